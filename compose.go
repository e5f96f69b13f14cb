package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"memory-nft-tui/config"
	"memory-nft-tui/nft"
	"memory-nft-tui/sui"

	"github.com/samber/lo"
)

var errUnknownDeployment = errors.New("deployment not found in config")

// options are the command line overrides shared by the TUI and the CLI
type options struct {
	configPath string
	rpcURL     string
	keystore   string
	address    string
	deployment string
}

// session is everything one front end needs: a wallet, one shared result
// state, and a handler per operation mounted on that state
type session struct {
	cfg        config.Config
	configPath string
	rpcURL     string
	deployment config.Deployment
	wallet     *sui.Wallet
	state      *nft.State
	handlers   []*nft.Handler

	keystoreErr string

	// set when --deployment named no configured deployment
	deploymentErr error

	// warnings collected before a logger exists
	warnings []string
}

// compose loads config and keystore and mounts the handlers
func compose(opts options) *session {
	s := &session{configPath: opts.configPath}
	if s.configPath == "" {
		s.configPath = config.DefaultPath()
	}
	s.cfg = config.LoadOrCreate(s.configPath)
	s.rpcURL = resolveRPC(s.cfg, opts.rpcURL)

	ksPath := resolveKeystorePath(s.cfg, opts.keystore)
	ks, err := sui.LoadKeystore(ksPath)
	if err != nil {
		s.keystoreErr = err.Error()
		s.warnings = append(s.warnings, err.Error())
		ks = &sui.Keystore{Path: ksPath}
	}
	for _, skipped := range ks.Skipped {
		s.warnings = append(s.warnings, "keystore "+skipped.Error())
	}
	s.wallet = sui.NewWallet(nil, ks, s.cfg.GasBudget)

	if addr := lo.Ternary(opts.address != "", opts.address, s.cfg.ActiveIdentity()); addr != "" {
		if err := s.wallet.Connect(addr); err != nil {
			s.warnings = append(s.warnings, err.Error())
		}
	}

	d, ok := resolveDeployment(s.cfg, opts.deployment)
	if !ok {
		s.deploymentErr = fmt.Errorf("%w: %q", errUnknownDeployment, opts.deployment)
		s.warnings = append(s.warnings, s.deploymentErr.Error())
	}
	s.deployment = d

	s.state = nft.NewState()
	s.handlers = lo.Map(nft.Kinds(), func(k nft.Kind, _ int) *nft.Handler {
		return nft.NewHandler(k, d.NFT(), nil)
	})
	return s
}

// handler returns the mounted handler for kind
func (s *session) handler(kind nft.Kind) *nft.Handler {
	h, _ := lo.Find(s.handlers, func(h *nft.Handler) bool { return h.Kind == kind })
	return h
}

// useDeployment retargets every handler at d
func (s *session) useDeployment(d config.Deployment) {
	s.deployment = d
	for _, h := range s.handlers {
		h.Deployment = d.NFT()
	}
}

// resolveRPC picks the flag, then SUI_RPC_URL, then the active config entry
func resolveRPC(cfg config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	if env := strings.TrimSpace(os.Getenv("SUI_RPC_URL")); env != "" {
		return env
	}
	r, _ := cfg.ActiveRPC()
	return r.URL
}

// resolveKeystorePath picks the flag, then SUI_KEYSTORE, then config, then the Sui CLI default
func resolveKeystorePath(cfg config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	if env := strings.TrimSpace(os.Getenv("SUI_KEYSTORE")); env != "" {
		return env
	}
	if cfg.Keystore != "" {
		return cfg.Keystore
	}
	return sui.DefaultKeystorePath()
}

// resolveDeployment finds a deployment by name, or the active one
func resolveDeployment(cfg config.Config, name string) (config.Deployment, bool) {
	if name != "" {
		d, ok := lo.Find(cfg.Deployments, func(d config.Deployment) bool { return strings.EqualFold(d.Name, name) })
		if ok {
			return d, true
		}
		active, _ := cfg.ActiveDeployment()
		return active, false
	}
	d, _ := cfg.ActiveDeployment()
	return d, true
}
