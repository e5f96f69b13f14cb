package log

import (
	"fmt"

	"memory-nft-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// PanelHeight returns the viewport height the log panel gets for a terminal
// of the given height: at most a third of the screen and never above 15 lines
func PanelHeight(height int) int {
	// header, nav, title, borders and margins
	const reserved = 10
	available := max(5, height-reserved)
	return min(available, min(height/3, 15))
}

// Render renders the debug log panel. logFile, when set, is shown in the title.
func Render(width, height int, logReady bool, spinnerView string, vp viewport.Model, logFile string) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")
	if logFile != "" {
		title += lipgloss.NewStyle().Foreground(styles.CMuted).Render(" → " + logFile)
	}

	vp.Height = PanelHeight(height)

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(max(0, width-2)).
		Height(vp.Height + 2)

	if !logReady {
		return border.Render(title + "\n\n" + "initializing...\n" + spinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n\n" + vp.View())
}
