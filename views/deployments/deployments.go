package deployments

import (
	"strings"

	"memory-nft-tui/config"
	"memory-nft-tui/helpers"
	"memory-nft-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the deployments view
func Nav(width int, mode string) string {
	var left string
	if mode == "add" || mode == "edit" {
		left = strings.Join([]string{
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("Tab") + " select next",
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

func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Width(30).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center).
		Background(styles.CPanel).
		Padding(1, 2).
		BorderStyle(lipgloss.HiddenBorder())
}

func cardFocusedStyle() lipgloss.Style {
	return cardStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("69"))
}

func renderCard(d config.Deployment, focused bool) string {
	icon := "○"
	if d.Active {
		icon = lipgloss.NewStyle().Foreground(styles.CAccent).Render("●")
	}

	nameStyle := lipgloss.NewStyle().
		Foreground(styles.CText).
		Bold(true).
		Align(lipgloss.Center)
	label := lipgloss.NewStyle().Foreground(styles.CMuted)

	content := icon + "\n\n" +
		nameStyle.Render(d.Name) + "\n" +
		label.Render("pkg ") + helpers.FadeString(helpers.ShortenAddr(d.PackageID), "#F25D94", "#EDFF82") + "\n" +
		label.Render("store ") + helpers.FadeString(helpers.ShortenAddr(d.TemplateStoreID), "#7D5AFC", "#FF87D7")

	if d.Network != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(styles.CAccent).Render("["+d.Network+"]")
	}

	if focused {
		return cardFocusedStyle().Render(content)
	}
	return cardStyle().Render(content)
}

// Render renders the deployments as a grid of cards
func Render(list []config.Deployment, selectedIdx int) string {
	h := styles.TitleStyle.Render("Deployments")

	if len(list) == 0 {
		muted := lipgloss.NewStyle().Foreground(styles.CMuted)
		return h + "\n\n" + muted.Render("No deployments configured.") + "\n\n" +
			muted.Render("Press ") + styles.Key("a") + muted.Render(" to add a published package.")
	}

	const columnsPerRow = 3
	var rows []string
	for i := 0; i < len(list); i += columnsPerRow {
		var cards []string
		for j := 0; j < columnsPerRow && i+j < len(list); j++ {
			cards = append(cards, renderCard(list[i+j], i+j == selectedIdx))
			if j < columnsPerRow-1 && i+j+1 < len(list) {
				cards = append(cards, "  ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return h + "\n\n" + strings.Join(rows, "\n")
}
