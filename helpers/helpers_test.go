package helpers

import (
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestShortenAddr(t *testing.T) {
	addr := "0xa4741e999ca62a46e260aed19f7571f87a3207acca23f510e719c78681547a88"
	if got := ShortenAddr(addr); got != "0xa474…7a88" {
		t.Errorf("ShortenAddr = %q", got)
	}
	if got := ShortenAddr("0x2"); got != "0x2" {
		t.Errorf("short input changed: %q", got)
	}
}

func TestFormatSUI(t *testing.T) {
	tests := []struct {
		mist *big.Int
		want string
	}{
		{nil, "0 SUI"},
		{big.NewInt(0), "0.0000 SUI"},
		{big.NewInt(1_500_000_000), "1.5000 SUI"},
	}
	for _, tt := range tests {
		if got := FormatSUI(tt.mist); got != tt.want {
			t.Errorf("FormatSUI(%v) = %q, want %q", tt.mist, got, tt.want)
		}
	}
}

func TestExplorerTxURL(t *testing.T) {
	if got := ExplorerTxURL("Testnet", "0xABC123"); got != "https://suiscan.xyz/testnet/tx/0xABC123" {
		t.Errorf("ExplorerTxURL = %q", got)
	}
	if got := ExplorerTxURL("", "d"); !strings.Contains(got, "/testnet/") {
		t.Errorf("empty network should default to testnet: %q", got)
	}
}

func TestLoadedAt(t *testing.T) {
	if LoadedAt(time.Time{}, false) != "never" {
		t.Error("zero time should read never")
	}
	if LoadedAt(time.Now(), true) != "loading…" {
		t.Error("loading flag ignored")
	}
}

func TestFadeString(t *testing.T) {
	if FadeString("", "#000000", "#FFFFFF") != "" {
		t.Error("empty input should render empty")
	}
	if out := FadeString("memory", "#7EE787", "#82CFFD"); !strings.Contains(out, "m") {
		t.Errorf("gradient dropped characters: %q", out)
	}
}
