package notice

import (
	"memory-nft-tui/helpers"
	"memory-nft-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Render renders a blocking notice dialog centered in a w by h area
func Render(w, h int, message string) string {
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).
		Render(helpers.FadeString(message, "#F25D94", "#EDFF82"))
	ui := lipgloss.JoinVertical(lipgloss.Center, question, styles.ActiveButtonStyle.MarginTop(1).Render("OK"))

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, styles.DialogStyle.Render(ui))
}
