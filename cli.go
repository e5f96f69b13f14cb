package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"memory-nft-tui/config"
	"memory-nft-tui/helpers"
	"memory-nft-tui/nft"
	"memory-nft-tui/sui"
	"memory-nft-tui/views/result"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// errSubmissionFailed is returned by subcommands whose transaction failed
var errSubmissionFailed = errors.New("submission failed")

// newRootCmd builds the command tree; the bare command runs the TUI
func newRootCmd() *cobra.Command {
	opts := &options{}
	var verbose bool

	root := &cobra.Command{
		Use:   "memory-nft",
		Short: "Mint memory NFTs on Sui",
		Long: `Terminal front end for the my_nft_collection Move package.

Run without a subcommand to open the interactive UI, or use one of the
subcommands to submit a single transaction from scripts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newModel(*opts)
			p := tea.NewProgram(&m, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default ~/.memory-nft-config.json)")
	pf.StringVar(&opts.rpcURL, "rpc", "", "Sui fullnode URL (overrides SUI_RPC_URL and config)")
	pf.StringVar(&opts.keystore, "keystore", "", "Sui keystore file (overrides SUI_KEYSTORE and config)")
	pf.StringVarP(&opts.address, "address", "a", "", "Signing address from the keystore")
	pf.StringVarP(&opts.deployment, "deployment", "d", "", "Deployment name from config")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")

	logger := func(cmd *cobra.Command) *log.Logger {
		return newCLILogger(cmd.ErrOrStderr(), verbose)
	}

	root.AddCommand(
		newMintRandomCmd(opts, logger),
		newAddTemplateCmd(opts, logger),
		newMintIntroCmd(opts, logger),
		newIdentitiesCmd(opts, logger),
	)
	return root
}

func newMintRandomCmd(opts *options, logger func(*cobra.Command) *log.Logger) *cobra.Command {
	var qr bool
	cmd := &cobra.Command{
		Use:   "mint-random",
		Short: "Mint a memory NFT from a random template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, *opts, logger(cmd), nft.OpMintRandom, nft.EmptyForm(), qr)
		},
	}
	cmd.Flags().BoolVar(&qr, "qr", false, "Print a QR code of the explorer link")
	return cmd
}

func newAddTemplateCmd(opts *options, logger func(*cobra.Command) *log.Logger) *cobra.Command {
	var qr bool
	form := nft.EmptyForm()
	cmd := &cobra.Command{
		Use:   "add-template",
		Short: "Register a memory template in the template store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, *opts, logger(cmd), nft.OpAddTemplate, form, qr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Title, "title", "", "Template title")
	f.StringVar(&form.Description, "description", "", "Template description")
	f.StringVar(&form.ImageURL, "image-url", "", "Template image URL")
	f.IntVar(&form.Rarity, "rarity", 1, "Rarity from 1 to 5")
	f.BoolVar(&qr, "qr", false, "Print a QR code of the explorer link")
	return cmd
}

func newMintIntroCmd(opts *options, logger func(*cobra.Command) *log.Logger) *cobra.Command {
	var qr bool
	form := nft.EmptyForm()
	cmd := &cobra.Command{
		Use:   "mint-intro",
		Short: "Mint a self-introduction NFT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, *opts, logger(cmd), nft.OpMintIntroduction, form, qr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "Your name")
	f.StringVar(&form.Description, "description", "", "A short description")
	f.StringVar(&form.ImageURL, "image-url", "", "Image URL")
	f.StringVar(&form.Slogan, "slogan", "", "Your slogan")
	f.BoolVar(&qr, "qr", false, "Print a QR code of the explorer link")
	return cmd
}

// runOperation drives one handler to completion and prints the result panel
func runOperation(cmd *cobra.Command, opts options, logger *log.Logger, kind nft.Kind, form nft.FormInput, qr bool) error {
	s := compose(opts)
	if s.deploymentErr != nil {
		return s.deploymentErr
	}
	for _, w := range s.warnings {
		logger.Warn(w)
	}

	h := s.handler(kind)
	h.Form = form
	h.Logger = logger

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w := &dialingWallet{Wallet: s.wallet, url: s.rpcURL}
	defer w.Close()

	o, err := h.Submit(ctx, s.state, w)
	out := cmd.OutOrStdout()

	var verr *nft.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(out, verr.Notice())
		return err
	case errors.Is(err, nft.ErrIdentityUnavailable):
		return fmt.Errorf("%w: pass --address or connect one with `identities use`", err)
	case err != nil && o == nil:
		return err
	}

	explorer := ""
	if qr && o.IsSuccess() {
		explorer = helpers.ExplorerTxURL(s.deployment.Network, o.Digest)
	}
	fmt.Fprintln(out, result.RenderWithExplorer(false, o, "", explorer))

	if o.IsFailure() {
		return errSubmissionFailed
	}
	return nil
}

// dialingWallet connects to the fullnode on the first submission, so
// requests rejected before signing never touch the network
type dialingWallet struct {
	*sui.Wallet
	url string

	once   sync.Once
	client *sui.Client
	err    error
}

func (w *dialingWallet) Submit(ctx context.Context, req nft.CallRequest) (nft.Receipt, error) {
	w.once.Do(func() {
		if w.url == "" {
			w.err = errors.New("no RPC endpoint: set SUI_RPC_URL or pass --rpc")
			return
		}
		res := sui.Connect(w.url)
		if res.Error != nil {
			w.err = fmt.Errorf("connect %s: %w", w.url, res.Error)
			return
		}
		w.client = res.Client
		w.Wallet.SetClient(res.Client)
	})
	if w.err != nil {
		return nft.Receipt{}, w.err
	}
	return w.Wallet.Submit(ctx, req)
}

// Close releases the connection, if one was made
func (w *dialingWallet) Close() {
	if w.client != nil {
		w.client.Close()
	}
}

func newIdentitiesCmd(opts *options, logger func(*cobra.Command) *log.Logger) *cobra.Command {
	var balances bool
	cmd := &cobra.Command{
		Use:   "identities",
		Short: "List the ed25519 identities in the keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := compose(*opts)
			l := logger(cmd)
			for _, w := range s.warnings {
				l.Warn(w)
			}

			var client *sui.Client
			if balances && s.rpcURL != "" {
				res := sui.Connect(s.rpcURL)
				if res.Error != nil {
					l.Error("RPC connection failed", "url", s.rpcURL, "err", res.Error)
				} else {
					client = res.Client
					defer client.Close()
				}
			}
			return printIdentities(cmd.OutOrStdout(), s, client)
		},
	}
	cmd.Flags().BoolVarP(&balances, "balance", "b", false, "Fetch SUI balances")

	use := &cobra.Command{
		Use:   "use <address>",
		Short: "Connect an identity for future runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := compose(*opts)
			if err := s.wallet.Connect(args[0]); err != nil {
				return err
			}
			id, _ := s.wallet.CurrentIdentity()
			s.cfg.SetActiveIdentity(id.Address)
			if err := config.Save(s.configPath, s.cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			logger(cmd).Info("Connected identity", "address", id.Address)
			return nil
		},
	}
	cmd.AddCommand(use)
	return cmd
}

// printIdentities writes the identity table; balances are shown when client is set
func printIdentities(out io.Writer, s *session, client *sui.Client) error {
	active, _ := s.wallet.CurrentIdentity()
	headers := []string{"", "ADDRESS", "NAME"}
	if client != nil {
		headers = append(headers, "BALANCE")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(cBorder)).
		Headers(headers...)

	for _, addr := range s.wallet.Keystore().Addresses() {
		marker := ""
		if addr == active.Address {
			marker = "✓"
		}
		row := []string{marker, addr, s.cfg.IdentityName(addr)}
		if client != nil {
			d := sui.LoadIdentityDetails(client, addr)
			if d.ErrMessage != "" {
				row = append(row, d.ErrMessage)
			} else {
				row = append(row, helpers.FormatSUI(d.Mist))
			}
		}
		t.Row(row...)
	}

	_, err := fmt.Fprintln(out, t.Render())
	return err
}
