package result

import (
	"strings"
	"testing"

	"memory-nft-tui/nft"
)

func TestRenderStates(t *testing.T) {
	tests := []struct {
		name    string
		loading bool
		outcome *nft.Outcome
		want    []string
		notWant []string
	}{
		{
			name: "idle",
		},
		{
			name:    "loading",
			loading: true,
			want:    []string{"⣾", LoadingText},
			notWant: []string{SuccessText, FailureText},
		},
		{
			name:    "success",
			outcome: nft.Success("0xABC123", nil),
			want:    []string{SuccessText, DigestLabel, "0xABC123", StatusText},
			notWant: []string{LoadingText, FailureText},
		},
		{
			name:    "failure",
			outcome: nft.Failure("User rejected request"),
			want:    []string{FailureText, "User rejected request"},
			notWant: []string{SuccessText, LoadingText},
		},
		{
			name:    "failure without message",
			outcome: &nft.Outcome{Kind: nft.OutcomeFailure},
			want:    []string{FailureText, nft.FallbackFailureMessage},
		},
		{
			name:    "loading wins over stale outcome",
			loading: true,
			outcome: nft.Success("0xABC123", nil),
			want:    []string{LoadingText},
			notWant: []string{SuccessText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.loading, tt.outcome, "⣾")
			if len(tt.want) == 0 && out != "" {
				t.Fatalf("expected empty output, got %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output unexpectedly contains %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	o := nft.Success("0xABC123", nil)
	first := RenderWithExplorer(false, o, "", "https://suiscan.xyz/testnet/tx/0xABC123")
	second := RenderWithExplorer(false, o, "", "https://suiscan.xyz/testnet/tx/0xABC123")
	if first != second {
		t.Error("same inputs rendered differently")
	}
}

func TestRenderWithExplorer(t *testing.T) {
	url := "https://suiscan.xyz/testnet/tx/0xABC123"

	out := RenderWithExplorer(false, nft.Success("0xABC123", nil), "", url)
	if !strings.Contains(out, url) {
		t.Error("explorer url not shown")
	}
	if strings.Count(out, "\n") < 10 {
		t.Errorf("QR code missing from output:\n%s", out)
	}

	if out := RenderWithExplorer(false, nft.Failure("boom"), "", url); strings.Contains(out, url) {
		t.Error("explorer url shown for a failure")
	}
}
