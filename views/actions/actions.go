package actions

import (
	"strings"

	"memory-nft-tui/nft"
	"memory-nft-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ConnectFirstLabel is shown on every action while no identity is connected
const ConnectFirstLabel = "Connect Wallet First"

// Nav returns the navigation bar for the actions view
func Nav(width int, hasDigest bool) string {
	keys := []string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " run",
	}
	if hasDigest {
		keys = append(keys,
			styles.Key("c")+" copy digest",
			styles.Key("v")+" qr",
		)
	}
	keys = append(keys,
		styles.Key("i")+" identities",
		styles.Key("s")+" settings",
		styles.Key("b")+" deployments",
		styles.Key("l")+" debug log",
		styles.Key("Esc")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Label returns the button text of an action
func Label(kind nft.Kind, connected, loading bool) string {
	switch {
	case !connected:
		return ConnectFirstLabel
	case loading:
		return kind.BusyLabel()
	default:
		return kind.Title()
	}
}

// Render renders the action buttons; every button is disabled while loading
func Render(kinds []nft.Kind, selectedIdx int, connected, loading bool, deployment string) string {
	h := styles.TitleStyle.Render("Memory NFTs")
	sub := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Deployment: " + deployment)

	var (
		button       = styles.ButtonStyle.Width(32)
		activeButton = styles.ActiveButtonStyle.Width(32)

		disabledButton = button.
				Foreground(styles.CMuted).
				Background(styles.CPanel)
	)

	lines := []string{h, sub, ""}
	for i, k := range kinds {
		label := Label(k, connected, loading)
		style := button
		switch {
		case loading || !connected && i != selectedIdx:
			style = disabledButton
		case i == selectedIdx:
			style = activeButton
		}
		lines = append(lines, style.Render(label), "")
	}
	return strings.Join(lines, "\n")
}
