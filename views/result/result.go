package result

import (
	"strings"

	"memory-nft-tui/nft"
	"memory-nft-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
)

const (
	LoadingText = "Minting your NFT..."
	SuccessText = "NFT Minted Successfully!"
	DigestLabel = "Transaction Digest:"
	StatusText  = "Status: Confirmed"
	FailureText = "Minting Failed"
)

// Render renders the result panel for the shared submission state.
// It has no side effects: equal inputs produce identical output.
func Render(loading bool, outcome *nft.Outcome, spinnerFrame string) string {
	return RenderWithExplorer(loading, outcome, spinnerFrame, "")
}

// RenderWithExplorer is Render plus, on success, a QR code of explorerURL
func RenderWithExplorer(loading bool, outcome *nft.Outcome, spinnerFrame, explorerURL string) string {
	switch nft.Classify(loading, outcome) {
	case nft.ViewLoading:
		return spinnerFrame + " " + lipgloss.NewStyle().Foreground(styles.CAccent2).Render(LoadingText)

	case nft.ViewSuccess:
		lines := []string{
			lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("✓ " + SuccessText),
			"",
			lipgloss.NewStyle().Foreground(styles.CMuted).Render(DigestLabel),
			lipgloss.NewStyle().Foreground(styles.CText).Render(outcome.Digest),
			"",
			lipgloss.NewStyle().Foreground(styles.CAccent).Render(StatusText),
		}
		if explorerURL != "" {
			lines = append(lines, "", QRCode(explorerURL),
				lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true).Render(explorerURL))
		}
		return strings.Join(lines, "\n")

	case nft.ViewFailure:
		msg := outcome.Message
		if msg == "" {
			msg = nft.FallbackFailureMessage
		}
		return lipgloss.NewStyle().Foreground(styles.CWarn).Bold(true).Render("✗ "+FailureText) + "\n\n" +
			lipgloss.NewStyle().Foreground(styles.CText).Render(msg)
	}
	return ""
}

// QRCode renders content as a half-block terminal QR code
func QRCode(content string) string {
	var b strings.Builder
	qrterminal.GenerateHalfBlock(content, qrterminal.L, &b)
	return strings.TrimRight(b.String(), "\n")
}
