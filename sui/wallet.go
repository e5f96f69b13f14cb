package sui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"memory-nft-tui/nft"
)

// DefaultGasBudget is used when config does not set one (0.05 SUI)
const DefaultGasBudget uint64 = 50_000_000

var (
	// ErrNoClient is returned when submitting without an RPC connection
	ErrNoClient = errors.New("no RPC client connected")

	// ErrTransactionFailed is returned when execution effects report failure
	ErrTransactionFailed = errors.New("transaction failed")
)

// Wallet signs with keystore keys and submits through a Client.
// It implements nft.Wallet.
type Wallet struct {
	mu        sync.RWMutex
	client    *Client
	keystore  *Keystore
	active    string
	gasBudget uint64
}

// NewWallet creates a wallet with no connected identity
func NewWallet(client *Client, ks *Keystore, gasBudget uint64) *Wallet {
	if gasBudget == 0 {
		gasBudget = DefaultGasBudget
	}
	return &Wallet{client: client, keystore: ks, gasBudget: gasBudget}
}

// SetClient swaps the RPC client, e.g. after the endpoint changes
func (w *Wallet) SetClient(c *Client) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.client = c
}

// Keystore returns the loaded keystore, possibly nil
func (w *Wallet) Keystore() *Keystore {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.keystore
}

// Connect makes address the current identity; it must be in the keystore
func (w *Wallet) Connect(address string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	k, ok := w.keystore.Lookup(address)
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, address)
	}
	w.active = k.Address
	return nil
}

// Disconnect drops the current identity
func (w *Wallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = ""
}

// CurrentIdentity returns the connected identity, if any
func (w *Wallet) CurrentIdentity() (nft.Identity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.active == "" {
		return nft.Identity{}, false
	}
	return nft.Identity{Address: w.active}, true
}

// Submit builds, signs, and executes req as the connected identity
func (w *Wallet) Submit(ctx context.Context, req nft.CallRequest) (nft.Receipt, error) {
	w.mu.RLock()
	client, active, budget := w.client, w.active, w.gasBudget
	key, ok := w.keystore.Lookup(active)
	w.mu.RUnlock()

	if client == nil || client.rpc == nil {
		return nft.Receipt{}, ErrNoClient
	}
	if active == "" || !ok {
		return nft.Receipt{}, nft.ErrIdentityUnavailable
	}

	txB64, err := client.MoveCall(ctx, key.Address, req.Target(), EncodeArgs(req.Args()), budget)
	if err != nil {
		return nft.Receipt{}, err
	}
	txBytes, err := base64.StdEncoding.DecodeString(txB64)
	if err != nil {
		return nft.Receipt{}, fmt.Errorf("decode transaction bytes: %w", err)
	}

	resp, raw, err := client.ExecuteTransactionBlock(ctx, txB64, key.SignTransaction(txBytes))
	if err != nil {
		return nft.Receipt{}, err
	}
	if resp.Effects == nil {
		return nft.Receipt{}, fmt.Errorf("%w: no effects for %s", ErrTransactionFailed, resp.Digest)
	}
	if resp.Effects.Status.Status != "success" {
		return nft.Receipt{}, fmt.Errorf("%w: %s", ErrTransactionFailed, resp.Effects.Status.Error)
	}

	return nft.Receipt{Digest: resp.Digest, Raw: raw}, nil
}

// EncodeArgs converts typed call arguments to Sui JSON values
func EncodeArgs(args []nft.Arg) []any {
	out := make([]any, 0, len(args))
	for _, a := range args {
		switch a.Type {
		case nft.ArgObject:
			out = append(out, NormalizeObjectID(a.Value.(string)))
		case nft.ArgU8:
			out = append(out, a.Value.(uint8))
		default:
			out = append(out, a.Value)
		}
	}
	return out
}
