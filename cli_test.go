package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"memory-nft-tui/config"
	"memory-nft-tui/nft"
)

func runCLI(t *testing.T, opts options, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	full := []string{"--config", opts.configPath, "--keystore", opts.keystore}
	if opts.rpcURL != "" {
		full = append(full, "--rpc", opts.rpcURL)
	}
	if opts.address != "" {
		full = append(full, "--address", opts.address)
	}
	cmd.SetArgs(append(full, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCLIMintRandom(t *testing.T) {
	node, url := startTestNode(t)
	opts, _ := testOptions(t, url, true)

	out, err := runCLI(t, opts, "mint-random", "--qr")
	if err != nil {
		t.Fatalf("mint-random failed: %v", err)
	}
	for _, want := range []string{"NFT Minted Successfully!", "0xABC123", "suiscan.xyz/testnet/tx/0xABC123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if node.executions() != 1 {
		t.Errorf("executed %d transactions, want 1", node.executions())
	}
}

func TestCLIMintFailure(t *testing.T) {
	node, url := startTestNode(t)
	node.mu.Lock()
	node.status = "failure"
	node.mu.Unlock()
	opts, _ := testOptions(t, url, true)

	out, err := runCLI(t, opts, "mint-intro",
		"--name", "Linh", "--description", "Builder",
		"--image-url", "https://example.com/me.jpg", "--slogan", "ship it")
	if !errors.Is(err, errSubmissionFailed) {
		t.Fatalf("expected errSubmissionFailed, got %v", err)
	}
	if !strings.Contains(out, "Minting Failed") || !strings.Contains(out, "MoveAbort") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCLIAddTemplateValidation(t *testing.T) {
	node, url := startTestNode(t)
	opts, _ := testOptions(t, url, true)

	out, err := runCLI(t, opts, "add-template",
		"--title", "Sunset", "--description", "First trip",
		"--image-url", "https://example.com/a.jpg", "--rarity", "6")

	var verr *nft.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if !strings.Contains(out, "rarity between 1-5") {
		t.Errorf("notice not printed:\n%s", out)
	}
	if node.executions() != 0 {
		t.Error("invalid request reached the node")
	}
}

func TestCLIUnknownDeployment(t *testing.T) {
	node, url := startTestNode(t)
	opts, _ := testOptions(t, url, true)

	_, err := runCLI(t, opts, "--deployment", "Memory NFT v3-typo", "mint-random")
	if !errors.Is(err, errUnknownDeployment) {
		t.Fatalf("expected errUnknownDeployment, got %v", err)
	}
	if node.executions() != 0 {
		t.Errorf("executed %d transactions against another deployment", node.executions())
	}

	t.Run("named deployment is used", func(t *testing.T) {
		if _, err := runCLI(t, opts, "--deployment", "memory nft v1", "mint-random"); err != nil {
			t.Fatalf("mint-random failed: %v", err)
		}
		if node.executions() != 1 {
			t.Errorf("executed %d transactions, want 1", node.executions())
		}
	})
}

func TestCLINoIdentity(t *testing.T) {
	opts, _ := testOptions(t, "http://127.0.0.1:1", false)

	_, err := runCLI(t, opts, "mint-random")
	if !errors.Is(err, nft.ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}
}

func TestCLIIdentities(t *testing.T) {
	_, url := startTestNode(t)
	opts, addr := testOptions(t, url, false)

	t.Run("use", func(t *testing.T) {
		if _, err := runCLI(t, opts, "identities", "use", addr); err != nil {
			t.Fatalf("identities use failed: %v", err)
		}
		if got := config.Load(opts.configPath).ActiveIdentity(); got != addr {
			t.Errorf("saved identity = %q, want %q", got, addr)
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		if _, err := runCLI(t, opts, "identities", "use", "0x1234"); err == nil {
			t.Error("expected an error for an address outside the keystore")
		}
	})

	t.Run("list with balance", func(t *testing.T) {
		out, err := runCLI(t, opts, "identities", "--balance")
		if err != nil {
			t.Fatalf("identities failed: %v", err)
		}
		for _, want := range []string{addr, "✓", "2.0000 SUI"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestResolveRPC(t *testing.T) {
	cfg := config.DefaultConfig()

	t.Setenv("SUI_RPC_URL", "")
	if got := resolveRPC(cfg, ""); got != cfg.RPCURLs[0].URL {
		t.Errorf("config fallback = %q", got)
	}

	t.Setenv("SUI_RPC_URL", " https://env.example ")
	if got := resolveRPC(cfg, ""); got != "https://env.example" {
		t.Errorf("env = %q", got)
	}
	if got := resolveRPC(cfg, "https://flag.example"); got != "https://flag.example" {
		t.Errorf("flag = %q", got)
	}
}

func TestResolveDeployment(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name     string
		arg      string
		wantName string
		wantOK   bool
	}{
		{"active by default", "", "Memory NFT v2", true},
		{"case insensitive match", "memory nft v1", "Memory NFT v1", true},
		{"unknown falls back", "nope", "Memory NFT v2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := resolveDeployment(cfg, tt.arg)
			if d.Name != tt.wantName || ok != tt.wantOK {
				t.Errorf("resolveDeployment(%q) = %s, %v", tt.arg, d.Name, ok)
			}
		})
	}
}
