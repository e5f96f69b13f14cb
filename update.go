package main

import (
	"errors"
	"strings"

	"memory-nft-tui/config"
	"memory-nft-tui/helpers"
	"memory-nft-tui/nft"
	"memory-nft-tui/sui"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logReady = true
		m.setLogger(newPanelLogger(logOutput(m.logBuffer, m.logFile)))
		m.addLog("info", "Logger enabled")
		return m, nil

	case rpcConnectedMsg:
		if msg.seq != m.rpcSeq {
			// superseded by a later dial or drop
			if msg.client != nil {
				msg.client.Close()
			}
			return m, nil
		}
		m.rpcConnecting = false
		if msg.err != nil {
			m.client = nil
			m.rpcConnected = false
			m.wallet.SetClient(nil)
			m.addLog("error", "RPC connection failed", "url", msg.url, "err", msg.err)
			return m, nil
		}
		m.client = msg.client
		m.rpcConnected = true
		m.wallet.SetClient(msg.client)
		m.detailsCache = make(map[string]sui.IdentityDetails)
		m.addLog("success", "RPC connected", "url", msg.url, "chain", msg.client.ChainID)
		if m.activePage == config.PageIdentities {
			return m, m.loadSelectedDetails()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			m.logViewport.Width = max(0, msg.Width-6)
			m.updateLogViewport()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case detailsLoadedMsg:
		m.detailsLoading = false
		m.details = msg.d
		if msg.d.ErrMessage != "" {
			m.addLog("error", msg.d.ErrMessage, "address", helpers.ShortenAddr(msg.d.Address))
		} else {
			m.detailsCache[strings.ToLower(msg.d.Address)] = msg.d
			m.addLog("debug", "Loaded balance", "address", helpers.ShortenAddr(msg.d.Address), "balance", helpers.FormatSUI(msg.d.Mist))
		}
		return m, nil

	case submissionSettledMsg:
		h := m.handler(msg.attempt.Request.Kind())
		if h == nil {
			return m, nil
		}
		h.Settle(m.state, msg.attempt, msg.receipt, msg.err)
		// gas was spent either way
		delete(m.detailsCache, strings.ToLower(msg.attempt.Identity.Address))
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "✓ copied " + msg.what
		m.addLog("info", "Copied "+msg.what+" to clipboard")
		return m, clearCopiedAfter()

	case clearCopiedMsg:
		m.copiedMsg = ""
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.handleKey(msg)
	}
	return m, nil
}

// updateForm routes input to the open form and acts on its completion
func (m *model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.completeForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// closeForm drops the open form and any page sub-mode tied to it
func (m *model) closeForm() {
	m.form = nil
	m.formHandler = nil
	m.nicknaming = false
	m.settingsMode = "list"
	m.deploymentMode = "list"
}

// completeForm applies a submitted form for whichever page owns it
func (m *model) completeForm() tea.Cmd {
	switch {
	case m.formHandler != nil:
		h := m.formHandler
		applyRarity(h)
		m.closeForm()
		return m.trigger(h)

	case m.nicknaming:
		addr := m.identityEntries()[m.selectedIdentity].Address
		name := strings.TrimSpace(tempNicknameField)
		m.cfg.SetIdentityName(addr, name)
		m.saveConfig()
		m.addLog("success", "Set nickname", "address", helpers.ShortenAddr(addr), "name", name)

	case m.settingsMode == "add":
		r := config.RPCUrl{Name: strings.TrimSpace(tempRPCFormName), URL: strings.TrimSpace(tempRPCFormURL)}
		if r.Name == "" {
			r.Name = r.URL
		}
		m.cfg.RPCURLs = append(m.cfg.RPCURLs, r)
		m.saveConfig()
		m.addLog("success", "Added RPC endpoint", "name", r.Name, "url", r.URL)

	case m.settingsMode == "edit":
		if m.selectedRPCIdx >= 0 && m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			r := &m.cfg.RPCURLs[m.selectedRPCIdx]
			r.Name = strings.TrimSpace(tempRPCFormName)
			r.URL = strings.TrimSpace(tempRPCFormURL)
			m.saveConfig()
			m.addLog("success", "Updated RPC endpoint", "name", r.Name)
			if r.Active {
				m.closeForm()
				return m.switchRPC(m.selectedRPCIdx)
			}
		}

	case m.deploymentMode == "add" || m.deploymentMode == "edit":
		d := config.Deployment{
			Name:            strings.TrimSpace(tempDeploymentName),
			Network:         tempDeploymentNet,
			PackageID:       strings.TrimSpace(tempDeploymentPkg),
			TemplateStoreID: strings.TrimSpace(tempDeploymentStore),
		}
		if m.deploymentMode == "add" {
			m.cfg.Deployments = append(m.cfg.Deployments, d)
			m.addLog("success", "Added deployment", "name", d.Name, "package", helpers.ShortenAddr(d.PackageID))
		} else if m.selectedDeploymentIdx >= 0 && m.selectedDeploymentIdx < len(m.cfg.Deployments) {
			d.Active = m.cfg.Deployments[m.selectedDeploymentIdx].Active
			m.cfg.Deployments[m.selectedDeploymentIdx] = d
			if d.Active {
				m.useDeployment(d)
			}
			m.addLog("success", "Updated deployment", "name", d.Name)
		}
		m.saveConfig()
	}

	m.closeForm()
	return nil
}

// trigger starts a submission for h. The wallet call runs in a command;
// its answer comes back as a submissionSettledMsg.
func (m *model) trigger(h *nft.Handler) tea.Cmd {
	a, err := h.Begin(m.state, m.wallet)
	if err == nil {
		m.showQR = false
		return submitCmd(m.wallet, a)
	}

	var verr *nft.ValidationError
	switch {
	case errors.As(err, &verr):
		m.notice = verr.Notice()
	case errors.Is(err, nft.ErrIdentityUnavailable):
		m.activePage = config.PageIdentities
		return m.loadSelectedDetails()
	}
	// in-flight and incomplete deployments are already reflected in state
	return nil
}

// switchRPC activates the endpoint at idx and reconnects
func (m *model) switchRPC(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return nil
	}
	m.cfg.SetActiveRPC(idx)
	m.saveConfig()

	m.rpcURL = m.cfg.RPCURLs[idx].URL
	m.addLog("info", "Connecting", "url", m.rpcURL)
	return m.dialRPC()
}

// dialRPC drops the current connection and dials m.rpcURL
func (m *model) dialRPC() tea.Cmd {
	m.dropRPC()
	m.rpcConnecting = true
	return connectRPC(m.rpcSeq, m.rpcURL)
}

// dropRPC closes the current client and invalidates any dial in flight
func (m *model) dropRPC() {
	m.rpcSeq++
	if m.client != nil {
		m.client.Close()
	}
	m.client = nil
	m.wallet.SetClient(nil)
	m.rpcConnected = false
	m.rpcConnecting = false
	m.detailsCache = make(map[string]sui.IdentityDetails)
}

// activateDeployment retargets every handler at the deployment at idx
func (m *model) activateDeployment(idx int) {
	if idx < 0 || idx >= len(m.cfg.Deployments) {
		return
	}
	m.cfg.SetActiveDeployment(idx)
	m.useDeployment(m.cfg.Deployments[idx])
	m.saveConfig()
	m.addLog("success", "Using deployment", "name", m.deployment.Name, "package", helpers.ShortenAddr(m.deployment.PackageID))
}

// -------------------- KEYS --------------------

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// the validation notice blocks everything until dismissed
	if m.notice != "" {
		switch msg.String() {
		case "esc", "enter", " ":
			m.notice = ""
		}
		return nil
	}

	if m.showRPCDeleteDialog {
		return m.handleRPCDeleteDialog(msg)
	}

	// global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit

	case "l", "L":
		return m.toggleLog()

	case "pageup", "pagedown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd
		}
		return nil
	}

	switch m.activePage {
	case config.PageActions:
		return m.handleActionsKey(msg)
	case config.PageIdentities:
		return m.handleIdentitiesKey(msg)
	case config.PageSettings:
		return m.handleSettingsKey(msg)
	case config.PageDeployments:
		return m.handleDeploymentsKey(msg)
	}
	return nil
}

// toggleLog shows or hides the debug log panel
func (m *model) toggleLog() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.cfg.Logger = m.logEnabled
	m.saveConfig()

	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}

	m.logBuffer.Reset()
	m.logReady = false
	if m.logFile != nil {
		m.setLogger(newFileLogger(m.logFile))
	} else {
		m.setLogger(nil)
	}
	return nil
}

// navigate handles the page switching keys shared by every page
func (m *model) navigate(key string) (tea.Cmd, bool) {
	switch key {
	case "i", "I":
		m.activePage = config.PageIdentities
		return m.loadSelectedDetails(), true
	case "s", "S":
		m.activePage = config.PageSettings
		return nil, true
	case "b", "B":
		m.activePage = config.PageDeployments
		return nil, true
	case "h", "H":
		m.activePage = config.PageActions
		return nil, true
	}
	return nil, false
}

func (m *model) handleActionsKey(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.navigate(msg.String()); ok {
		return cmd
	}

	switch msg.String() {
	case "esc":
		return tea.Quit

	case "up", "k":
		if m.selectedAction > 0 {
			m.selectedAction--
		}

	case "down", "j", "tab":
		if m.selectedAction < len(m.handlers)-1 {
			m.selectedAction++
		}

	case "enter", " ":
		h := m.selectedHandler()
		if h == nil || m.state.Loading() {
			return nil
		}
		if !m.connected() {
			m.activePage = config.PageIdentities
			return m.loadSelectedDetails()
		}
		if h.Kind.NeedsForm() {
			m.createOperationForm(h)
			return nil
		}
		return m.trigger(h)

	case "c", "C":
		if o := m.state.Outcome(); o.IsSuccess() {
			return copyToClipboard(o.Digest, "digest")
		}

	case "v", "V":
		if m.state.Outcome().IsSuccess() {
			m.showQR = !m.showQR
		}

	case "x", "X":
		m.state.Clear()
		m.showQR = false
	}
	return nil
}

func (m *model) handleIdentitiesKey(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.navigate(msg.String()); ok {
		return cmd
	}

	entries := m.identityEntries()
	switch msg.String() {
	case "esc":
		m.activePage = config.PageActions

	case "up", "k":
		if m.selectedIdentity > 0 {
			m.selectedIdentity--
			return m.loadSelectedDetails()
		}

	case "down", "j":
		if m.selectedIdentity < len(entries)-1 {
			m.selectedIdentity++
			return m.loadSelectedDetails()
		}

	case "enter", " ":
		if len(entries) == 0 {
			return nil
		}
		addr := entries[m.selectedIdentity].Address
		if err := m.wallet.Connect(addr); err != nil {
			m.addLog("error", "Connect failed", "err", err)
			return nil
		}
		m.cfg.SetActiveIdentity(addr)
		m.saveConfig()
		m.addLog("success", "Connected identity", "address", helpers.ShortenAddr(addr))

	case "x", "X":
		if !m.connected() {
			return nil
		}
		m.wallet.Disconnect()
		m.cfg.SetActiveIdentity("")
		m.saveConfig()
		m.addLog("info", "Disconnected identity")

	case "n", "N":
		if len(entries) > 0 {
			m.nicknaming = true
			m.createNicknameForm(entries[m.selectedIdentity].Address)
		}

	case "c", "C":
		if len(entries) > 0 {
			return copyToClipboard(entries[m.selectedIdentity].Address, "address")
		}

	case "r", "R":
		if len(entries) > 0 {
			delete(m.detailsCache, strings.ToLower(entries[m.selectedIdentity].Address))
			return m.loadSelectedDetails()
		}
	}
	return nil
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.navigate(msg.String()); ok {
		return cmd
	}

	switch msg.String() {
	case "esc":
		m.activePage = config.PageActions

	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}

	case "down", "j":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs)-1 {
			m.selectedRPCIdx++
		}

	case "enter", " ":
		return m.switchRPC(m.selectedRPCIdx)

	case "a", "A":
		m.settingsMode = "add"
		m.createAddRPCForm()

	case "e", "E":
		if len(m.cfg.RPCURLs) > 0 {
			m.settingsMode = "edit"
			m.createEditRPCForm(m.selectedRPCIdx)
		}

	case "d", "D", "delete", "backspace":
		if len(m.cfg.RPCURLs) > 0 {
			m.showRPCDeleteDialog = true
			m.deleteRPCDialogYesSelected = false
		}
	}
	return nil
}

func (m *model) handleRPCDeleteDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "right", "tab":
		m.deleteRPCDialogYesSelected = !m.deleteRPCDialogYesSelected
	case "esc":
		m.showRPCDeleteDialog = false
	case "enter":
		m.showRPCDeleteDialog = false
		if !m.deleteRPCDialogYesSelected {
			return nil
		}
		idx := m.selectedRPCIdx
		removed := m.cfg.RPCURLs[idx]
		m.cfg.RPCURLs = append(m.cfg.RPCURLs[:idx], m.cfg.RPCURLs[idx+1:]...)
		m.selectedRPCIdx = max(0, min(idx, len(m.cfg.RPCURLs)-1))
		m.saveConfig()
		m.addLog("info", "Deleted RPC endpoint", "name", removed.Name)
		switch {
		case len(m.cfg.RPCURLs) == 0:
			m.dropRPC()
			m.rpcURL = ""
		case removed.Active:
			return m.switchRPC(0)
		}
	}
	return nil
}

func (m *model) handleDeploymentsKey(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.navigate(msg.String()); ok {
		return cmd
	}

	n := len(m.cfg.Deployments)
	switch msg.String() {
	case "esc":
		m.activePage = config.PageActions

	case "tab", "right":
		if n > 0 {
			m.selectedDeploymentIdx = (m.selectedDeploymentIdx + 1) % n
		}

	case "shift+tab", "left":
		if n > 0 {
			m.selectedDeploymentIdx = (m.selectedDeploymentIdx - 1 + n) % n
		}

	case "enter", " ":
		m.activateDeployment(m.selectedDeploymentIdx)

	case "a", "A":
		m.deploymentMode = "add"
		m.createDeploymentForm(-1)

	case "e", "E":
		if n > 0 {
			m.deploymentMode = "edit"
			m.createDeploymentForm(m.selectedDeploymentIdx)
		}

	case "d", "D", "delete", "backspace":
		if n <= 1 {
			m.addLog("warning", "Cannot delete the only deployment")
			return nil
		}
		idx := m.selectedDeploymentIdx
		removed := m.cfg.Deployments[idx]
		m.cfg.Deployments = append(m.cfg.Deployments[:idx], m.cfg.Deployments[idx+1:]...)
		m.selectedDeploymentIdx = min(idx, len(m.cfg.Deployments)-1)
		m.addLog("info", "Deleted deployment", "name", removed.Name)
		if removed.Active {
			m.activateDeployment(0)
		} else {
			m.saveConfig()
		}
	}
	return nil
}
