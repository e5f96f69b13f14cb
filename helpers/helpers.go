package helpers

import (
	"fmt"
	"image/color"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

// MistPerSui is the number of MIST in one SUI
const MistPerSui = 1_000_000_000

// ShortenAddr shortens a Sui address or digest for display
func ShortenAddr(addr string) string {
	if len(addr) < 14 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// FormatSUI formats MIST to SUI with proper decimals
func FormatSUI(mist *big.Int) string {
	if mist == nil {
		return "0 SUI"
	}
	sui := new(big.Float).Quo(new(big.Float).SetInt(mist), big.NewFloat(MistPerSui))
	return sui.Text('f', 4) + " SUI"
}

// ExplorerTxURL returns the Suiscan page of a transaction
func ExplorerTxURL(network, digest string) string {
	if network == "" {
		network = "testnet"
	}
	return fmt.Sprintf("https://suiscan.xyz/%s/tx/%s", strings.ToLower(network), digest)
}

// ExplorerObjectURL returns the Suiscan page of an object or address
func ExplorerObjectURL(network, id string) string {
	if network == "" {
		network = "testnet"
	}
	return fmt.Sprintf("https://suiscan.xyz/%s/object/%s", strings.ToLower(network), id)
}

// LoadedAt formats the loaded timestamp
func LoadedAt(t time.Time, loading bool) string {
	if loading {
		return "loading…"
	}
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	n := len([]rune(s))
	if n == 0 {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), n)
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var b strings.Builder
	for i, c := range []rune(str) {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		b.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
	}
	return b.String()
}

