package main

import (
	"context"
	"strings"
	"time"

	"memory-nft-tui/config"
	"memory-nft-tui/nft"
	"memory-nft-tui/sui"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- COMMANDS --------------------

// connectRPC dials a Sui fullnode and probes its chain identifier.
// seq tags the attempt so results of superseded dials can be dropped.
func connectRPC(seq int, url string) tea.Cmd {
	return func() tea.Msg {
		result := sui.Connect(url)
		return rpcConnectedMsg{seq: seq, url: url, client: result.Client, err: result.Error}
	}
}

// initLogViewport returns a command that initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// submitCmd hands the built request to the wallet off the event loop.
// There is no timeout: the wallet decides when the call ends.
func submitCmd(w nft.Wallet, a nft.Attempt) tea.Cmd {
	return func() tea.Msg {
		r, err := w.Submit(context.Background(), a.Request)
		return submissionSettledMsg{attempt: a, receipt: r, err: err}
	}
}

// loadDetails fetches the balance for an identity
func loadDetails(client *sui.Client, addr string) tea.Cmd {
	return func() tea.Msg {
		return detailsLoadedMsg{d: sui.LoadIdentityDetails(client, addr)}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return nil
		}
		return clipboardCopiedMsg{what: what}
	}
}

// clearCopiedAfter waits 2 seconds then clears clipboard feedback
func clearCopiedAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a log entry to the panel and the log file, when either is on
func (m *model) addLog(logType, message string, kv ...any) {
	if m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message, kv...)
	case "success":
		m.logger.Info("✓ "+message, kv...)
	case "error":
		m.logger.Error(message, kv...)
	case "warning":
		m.logger.Warn(message, kv...)
	case "debug":
		m.logger.Debug(message, kv...)
	default:
		m.logger.Print(message, kv...)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// saveConfig persists the current configuration
func (m *model) saveConfig() {
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", "Failed to save config", "path", m.configPath, "err", err)
	}
}

// loadSelectedDetails loads the balance of the highlighted identity
func (m *model) loadSelectedDetails() tea.Cmd {
	entries := m.identityEntries()
	if len(entries) == 0 {
		return nil
	}
	addr := entries[m.selectedIdentity].Address

	if cached, ok := m.detailsCache[strings.ToLower(addr)]; ok {
		m.details = cached
		m.detailsLoading = false
		return nil
	}

	m.detailsLoading = true
	m.details = sui.IdentityDetails{Address: addr}
	return loadDetails(m.client, addr)
}

// textInputActive returns true if any form is currently active
func (m *model) textInputActive() bool {
	return m.form != nil
}
