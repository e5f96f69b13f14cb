package settings

import (
	"strings"

	"memory-nft-tui/config"
	"memory-nft-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the RPC settings view
func Nav(width int, mode string) string {
	var left string
	if mode == "add" || mode == "edit" {
		left = strings.Join([]string{
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("e") + " edit",
			styles.Key("d") + " delete",
			styles.Key("h") + " actions",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the Sui fullnode endpoints; chainID is shown next to the
// endpoint currently connected
func Render(rpcURLs []config.RPCUrl, selectedIdx int, connectedURL, chainID string) string {
	h := styles.TitleStyle.Render("RPC Settings")
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)

	lines := []string{h, ""}
	if len(rpcURLs) == 0 {
		lines = append(lines,
			muted.Render("No fullnode endpoints configured."),
			"",
			muted.Render("Press ")+styles.Key("a")+muted.Render(" to add one, or set SUI_RPC_URL."),
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, muted.Render("Sui fullnode endpoints:"), "")
	for i, rpc := range rpcURLs {
		marker := muted.Render("○ ")
		if rpc.Active {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := muted
		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		line := marker + nameStyle.Render(rpc.Name)
		if chainID != "" && rpc.URL == connectedURL {
			line += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render("chain "+chainID)
		}
		lines = append(lines, line, "  "+urlStyle.Render(rpc.URL), "")
	}
	return strings.Join(lines, "\n")
}
