package main

import (
	"strings"

	"memory-nft-tui/config"
	"memory-nft-tui/helpers"
	"memory-nft-tui/styles"
	"memory-nft-tui/views/actions"
	"memory-nft-tui/views/deployments"
	"memory-nft-tui/views/identities"
	logview "memory-nft-tui/views/log"
	"memory-nft-tui/views/notice"
	"memory-nft-tui/views/result"
	"memory-nft-tui/views/settings"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderRPCDeleteDialog() string {
	var (
		buttonStyle       = styles.ButtonStyle.MarginTop(1)
		activeButtonStyle = styles.ActiveButtonStyle.MarginTop(1).MarginRight(2)
	)
	name := ""
	if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
		name = m.cfg.RPCURLs[m.selectedRPCIdx].Name
	}
	msg := helpers.FadeString("Are you sure you want to delete the RPC endpoint "+name+"?", "#F25D94", "#EDFF82")
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	var okButton, cancelButton string
	if m.deleteRPCDialogYesSelected {
		okButton = activeButtonStyle.Render("Yes")
		cancelButton = buttonStyle.Render("No")
	} else {
		okButton = buttonStyle.MarginRight(2).Render("Yes")
		cancelButton = activeButtonStyle.MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, buttons)

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		styles.DialogStyle.Padding(1, 0).Render(ui),
	)
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8)

	var idDisplay string
	if id, ok := m.wallet.CurrentIdentity(); ok {
		label := helpers.ShortenAddr(id.Address)
		if name := m.cfg.IdentityName(id.Address); name != "" {
			label = name + " " + label
		}
		idDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Identity: " + helpers.FadeString(label, "#F25D94", "#EDFF82"))
	} else {
		idDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Identity: not connected")
	}

	var statusIcon, statusText string
	statusColor := lipgloss.Color("#c01c28")
	switch {
	case m.rpcURL == "":
		statusIcon, statusText = "○", "No RPC"
	case m.rpcConnecting:
		statusIcon, statusText = "○", "Connecting..."
	case !m.rpcConnected:
		statusIcon, statusText = "○", "Connection Failed"
	default:
		statusIcon, statusColor = "●", cAccent
		statusText = "Connected"
		if r, ok := m.cfg.ActiveRPC(); ok && r.URL == m.rpcURL {
			statusText = r.Name
		}
	}
	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Bold(true).
		Render(helpers.FadeString("memory nft", "#7EE787", "#82CFFD"))

	idWidth := lipgloss.Width(idDisplay)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := idWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		headerLine = idDisplay + "\n" + titleText + "\n" + rpcDisplay
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding
		headerLine = idDisplay + strings.Repeat(" ", max(1, leftPadding)) + titleText + strings.Repeat(" ", max(1, rightPadding)) + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// resultContent renders the shared result panel
func (m *model) resultContent() string {
	loading, outcome := m.state.Snapshot()

	explorer := ""
	if m.showQR && outcome.IsSuccess() {
		explorer = helpers.ExplorerTxURL(m.deployment.Network, outcome.Digest)
	}

	content := styles.TitleStyle.Render("Result") + "\n\n" +
		result.RenderWithExplorer(loading, outcome, m.spin.View(), explorer)
	if m.copiedMsg != "" && outcome.IsSuccess() {
		content += "\n\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}
	return content
}

// splitPanels renders left and right side by side, 40/60, with equal heights
func (m *model) splitPanels(left, right string) string {
	listWidth := max(0, (m.w*4)/10-2)
	detailsWidth := max(0, (m.w*6)/10-2)

	leftPanel := panelStyle.Width(listWidth).Render(left)
	rightPanel := panelStyle.
		Width(detailsWidth + 1).
		Height(max(0, lipgloss.Height(leftPanel)-2)).
		Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

func (m *model) View() string {
	if m.notice != "" {
		return notice.Render(m.w, m.h, m.notice)
	}
	if m.showRPCDeleteDialog {
		return m.renderRPCDeleteDialog()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var pageContent, nav string

	switch m.activePage {
	case config.PageActions:
		left := actions.Render(m.kinds(), m.selectedAction, m.connected(), m.state.Loading(), m.deployment.Name)
		if m.form != nil && m.formHandler != nil {
			left = m.form.View()
		}
		pageContent = m.splitPanels(left, m.resultContent())
		nav = actions.Nav(m.w-2, m.state.Outcome().IsSuccess())

	case config.PageIdentities:
		entries := m.identityEntries()
		ksPath := ""
		if ks := m.wallet.Keystore(); ks != nil {
			ksPath = ks.Path
		}
		left := identities.Render(entries, m.selectedIdentity, ksPath, m.keystoreErr)

		right := identities.RenderDetails(m.details, m.cfg.IdentityName(m.details.Address), m.deployment.Network, m.detailsLoading, m.copiedMsg, m.spin.View())
		if m.nicknaming && m.form != nil {
			right = styles.TitleStyle.Render("Nickname") + "\n\n" + m.form.View()
		}
		pageContent = m.splitPanels(left, right)
		nav = identities.Nav(m.w-2, m.nicknaming)

	case config.PageSettings:
		chainID := ""
		if m.client != nil {
			chainID = m.client.ChainID
		}
		content := settings.Render(m.cfg.RPCURLs, m.selectedRPCIdx, m.rpcURL, chainID)
		if (m.settingsMode == "add" || m.settingsMode == "edit") && m.form != nil {
			content = styles.TitleStyle.Render("RPC Settings") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = settings.Nav(m.w-2, m.settingsMode)

	case config.PageDeployments:
		content := deployments.Render(m.cfg.Deployments, m.selectedDeploymentIdx)
		if (m.deploymentMode == "add" || m.deploymentMode == "edit") && m.form != nil {
			content = styles.TitleStyle.Render("Deployments") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = deployments.Nav(m.w-2, m.deploymentMode)
	}

	sections := []string{headerPanel, pageContent, nav}
	if m.logEnabled {
		m.logViewport.Height = logview.PanelHeight(m.h)
		logFile := ""
		if m.logFile != nil {
			logFile = m.logFile.Filename
		}
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport, logFile))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
