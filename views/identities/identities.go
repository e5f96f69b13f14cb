package identities

import (
	"fmt"
	"strings"

	"memory-nft-tui/helpers"
	"memory-nft-tui/styles"
	"memory-nft-tui/sui"

	"github.com/charmbracelet/lipgloss"
)

// Entry is one keystore address as shown in the list
type Entry struct {
	Address   string
	Name      string
	Connected bool
}

// Nav returns the navigation bar for the identities view
func Nav(width int, nicknaming bool) string {
	var left string
	if nicknaming {
		left = strings.Join([]string{
			styles.Key("Enter") + " save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " move",
			styles.Key("Enter") + " connect",
			styles.Key("x") + " disconnect",
			styles.Key("n") + " nickname",
			styles.Key("c") + " copy address",
			styles.Key("r") + " refresh",
			styles.Key("h") + " actions",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}

// RenderList renders the identity list
func RenderList(entries []Entry, selectedIdx int) string {
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.CMuted).Render("No ed25519 keys found in the keystore.")
	}

	var items []string
	for i, e := range entries {
		var itemStyle lipgloss.Style
		var marker, fullAddr, shortAddr string

		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			fullAddr = lipgloss.NewStyle().Foreground(styles.CText).Render(e.Address)
			shortAddr = helpers.ShortenAddr(e.Address)
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
			fullAddr = helpers.FadeString(e.Address, "#7D5AFC", "#FF87D7")
			shortAddr = helpers.FadeString(helpers.ShortenAddr(e.Address), "#F25D94", "#EDFF82")
		}

		if e.Name != "" {
			shortAddr = e.Name + " - " + shortAddr
		}
		if e.Connected {
			shortAddr = "✓ " + shortAddr
		}
		items = append(items, marker+itemStyle.Render(shortAddr)+"\n  "+fullAddr)
	}
	return strings.Join(items, "\n\n")
}

// Render renders the identity list with its header and keystore status
func Render(entries []Entry, selectedIdx int, keystorePath, keystoreErr string) string {
	header := styles.TitleStyle.Render("Identities")
	subtitle := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Keystore: " + keystorePath)

	body := RenderList(entries, selectedIdx)
	if keystoreErr != "" {
		body = lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ "+keystoreErr) + "\n\n" + body
	}

	statusBar := lipgloss.NewStyle().Foreground(styles.CMuted).Render(fmt.Sprintf("%d identities", len(entries)))
	return header + "\n" + subtitle + "\n\n" + body + "\n\n" + statusBar
}

// RenderDetails renders the balance panel of one identity
func RenderDetails(d sui.IdentityDetails, name, network string, loading bool, copiedMsg, spinnerView string) string {
	h := styles.TitleStyle.Render("Identity Details")
	if d.Address == "" {
		return h + "\n\n" + lipgloss.NewStyle().Foreground(styles.CMuted).Render("Select an identity.")
	}

	explorer := helpers.ExplorerObjectURL(network, d.Address)
	addrStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", explorer, addrStyle.Render(d.Address))

	if name != "" {
		sub = lipgloss.NewStyle().Foreground(styles.CAccent2).Italic(true).Render("\""+name+"\"") + "  " + sub
	}
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}

	if loading {
		return h + "\n" + sub + "\n\n" + spinnerView + " fetching balance…"
	}

	if d.ErrMessage != "" {
		msg := lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ " + d.ErrMessage)
		hint := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Tip: set ") + lipgloss.NewStyle().Foreground(styles.CAccent).Render("SUI_RPC_URL") +
			lipgloss.NewStyle().Foreground(styles.CMuted).Render(" then press ") + styles.Key("r") + lipgloss.NewStyle().Foreground(styles.CMuted).Render(" to refresh.")
		return h + "\n" + sub + "\n\n" + msg + "\n\n" + hint
	}

	suiLine := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("SUI"),
		lipgloss.NewStyle().Foreground(styles.CText).Render(helpers.FormatSUI(d.Mist)),
	)
	loaded := lipgloss.NewStyle().Foreground(styles.CMuted).Render("updated " + helpers.LoadedAt(d.LoadedAt, false))

	return strings.Join([]string{h, sub, "", suiLine, "", loaded}, "\n")
}
