package main

import (
	"strings"

	"memory-nft-tui/config"
	"memory-nft-tui/nft"
	"memory-nft-tui/styles"
	"memory-nft-tui/sui"
	"memory-nft-tui/views/identities"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gopkg.in/natefinch/lumberjack.v2"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	*session

	w, h int

	activePage config.Page

	// actions page
	selectedAction int
	formHandler    *nft.Handler // handler whose form is open
	notice         string       // blocking validation notice
	showQR         bool

	// rpc
	client        *sui.Client
	rpcConnected  bool
	rpcConnecting bool
	rpcSeq        int // bumped on every dial or drop

	// identities page
	selectedIdentity int
	details          sui.IdentityDetails
	detailsLoading   bool
	detailsCache     map[string]sui.IdentityDetails
	nicknaming       bool

	// settings page
	settingsMode               string // "list", "add", "edit"
	selectedRPCIdx             int
	showRPCDeleteDialog        bool
	deleteRPCDialogYesSelected bool

	// deployments page
	deploymentMode        string // "list", "add", "edit"
	selectedDeploymentIdx int

	// the one open huh form, whichever page owns it
	form *huh.Form

	spin spinner.Model

	// clipboard feedback
	copiedMsg string

	// logger panel
	logEnabled  bool
	logFile     *lumberjack.Logger
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates and initializes a new model with configuration from disk
func newModel(opts options) model {
	s := compose(opts)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 20) // resized on the first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		session:        s,
		activePage:     config.PageActions,
		spin:           sp,
		settingsMode:   "list",
		deploymentMode: "list",
		detailsCache:   make(map[string]sui.IdentityDetails),
		logEnabled:     s.cfg.Logger,
		logFile:        newLogFile(s.cfg.LogFile),
		logViewport:    vp,
		logBuffer:      &strings.Builder{},
		logSpinner:     logSpin,
	}

	if idx, ok := lo.Find(lo.Range(len(s.cfg.Deployments)), func(i int) bool { return s.cfg.Deployments[i].Active }); ok {
		m.selectedDeploymentIdx = idx
	}
	if idx, ok := lo.Find(lo.Range(len(s.cfg.RPCURLs)), func(i int) bool { return s.cfg.RPCURLs[i].Active }); ok {
		m.selectedRPCIdx = idx
	}
	if id, ok := s.wallet.CurrentIdentity(); ok {
		entries := m.identityEntries()
		if _, idx, found := lo.FindIndexOf(entries, func(e identities.Entry) bool { return strings.EqualFold(e.Address, id.Address) }); found {
			m.selectedIdentity = idx
		}
	}

	// without the panel, the log file still gets every record
	if !m.logEnabled && m.logFile != nil {
		m.setLogger(newFileLogger(m.logFile))
	}

	return m
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if m.rpcURL != "" {
		cmds = append(cmds, m.dialRPC())
	}
	return tea.Batch(cmds...)
}

// setLogger installs l on the model and every handler, then flushes
// warnings collected before a logger existed
func (m *model) setLogger(l *log.Logger) {
	m.logger = l
	for _, h := range m.handlers {
		h.Logger = l
	}
	if l == nil {
		return
	}
	for _, w := range m.warnings {
		m.addLog("warning", w)
	}
	m.warnings = nil
}

// connected reports whether a wallet identity is available
func (m *model) connected() bool {
	_, ok := m.wallet.CurrentIdentity()
	return ok
}

// identityEntries merges keystore addresses with their config nicknames
func (m *model) identityEntries() []identities.Entry {
	active, _ := m.wallet.CurrentIdentity()
	return lo.Map(m.wallet.Keystore().Addresses(), func(addr string, _ int) identities.Entry {
		return identities.Entry{
			Address:   addr,
			Name:      m.cfg.IdentityName(addr),
			Connected: strings.EqualFold(addr, active.Address),
		}
	})
}

// kinds lists the mounted operations in display order
func (m *model) kinds() []nft.Kind {
	return lo.Map(m.handlers, func(h *nft.Handler, _ int) nft.Kind { return h.Kind })
}

// selectedHandler returns the handler behind the highlighted action
func (m *model) selectedHandler() *nft.Handler {
	if m.selectedAction < 0 || m.selectedAction >= len(m.handlers) {
		return nil
	}
	return m.handlers[m.selectedAction]
}
