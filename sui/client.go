package sui

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"memory-nft-tui/nft"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Client wraps a Sui JSON-RPC endpoint
type Client struct {
	rpc     *gethrpc.Client
	URL     string
	ChainID string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to a Sui fullnode
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout.
// HTTP dials are lazy, so the chain identifier is fetched to prove the node answers.
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	var chain string
	if err := c.CallContext(ctx, &chain, "sui_getChainIdentifier"); err != nil {
		c.Close()
		return ConnectResult{Client: nil, Error: fmt.Errorf("probe %s: %w", url, err)}
	}

	return ConnectResult{
		Client: &Client{rpc: c, URL: url, ChainID: chain},
		Error:  nil,
	}
}

// Close releases the underlying transport
func (c *Client) Close() {
	if c != nil && c.rpc != nil {
		c.rpc.Close()
	}
}

type moveCallResult struct {
	TxBytes string `json:"txBytes"`
}

// MoveCall asks the node to build an unsigned transaction calling target.
// It returns the base64 BCS transaction bytes.
func (c *Client) MoveCall(ctx context.Context, signer string, target nft.Target, args []any, gasBudget uint64) (string, error) {
	var res moveCallResult
	err := c.rpc.CallContext(ctx, &res, "unsafe_moveCall",
		signer,
		target.Package,
		target.Module,
		target.Function,
		[]string{},
		args,
		nil,
		strconv.FormatUint(gasBudget, 10),
	)
	if err != nil {
		return "", err
	}
	if res.TxBytes == "" {
		return "", fmt.Errorf("unsafe_moveCall returned no transaction bytes")
	}
	return res.TxBytes, nil
}

// ExecutionStatus is the effects status of an executed transaction
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ExecuteResponse is the subset of the execution response this app reads
type ExecuteResponse struct {
	Digest  string `json:"digest"`
	Effects *struct {
		Status ExecutionStatus `json:"status"`
	} `json:"effects"`
}

// ExecuteTransactionBlock submits signed bytes and waits for local execution.
// The raw response is returned alongside the decoded subset.
func (c *Client) ExecuteTransactionBlock(ctx context.Context, txBytes, signature string) (ExecuteResponse, json.RawMessage, error) {
	var raw json.RawMessage
	opts := map[string]bool{"showEffects": true, "showObjectChanges": true}
	err := c.rpc.CallContext(ctx, &raw, "sui_executeTransactionBlock", txBytes, []string{signature}, opts, "WaitForLocalExecution")
	if err != nil {
		return ExecuteResponse{}, nil, err
	}

	var resp ExecuteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ExecuteResponse{}, raw, fmt.Errorf("decode execution response: %w", err)
	}
	return resp, raw, nil
}

type balanceResult struct {
	CoinType     string `json:"coinType"`
	TotalBalance string `json:"totalBalance"`
}

// Balance returns the total SUI balance of owner, in MIST
func (c *Client) Balance(ctx context.Context, owner string) (*big.Int, error) {
	var res balanceResult
	if err := c.rpc.CallContext(ctx, &res, "suix_getBalance", owner, "0x2::sui::SUI"); err != nil {
		return nil, err
	}
	bal, ok := new(big.Int).SetString(res.TotalBalance, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q", res.TotalBalance)
	}
	return bal, nil
}

// IdentityDetails contains the balance panel data for one identity
type IdentityDetails struct {
	Address    string
	Mist       *big.Int
	LoadedAt   time.Time
	ErrMessage string
}

// LoadIdentityDetails fetches the SUI balance for an address
func LoadIdentityDetails(client *Client, addr string) IdentityDetails {
	return LoadIdentityDetailsWithTimeout(client, addr, 12*time.Second)
}

// LoadIdentityDetailsWithTimeout fetches identity details with a custom timeout
func LoadIdentityDetailsWithTimeout(client *Client, addr string, timeout time.Duration) IdentityDetails {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	d := IdentityDetails{
		Address:  addr,
		Mist:     big.NewInt(0),
		LoadedAt: time.Now(),
	}

	if client == nil || client.rpc == nil {
		d.ErrMessage = "No RPC client (set SUI_RPC_URL)."
		return d
	}

	bal, err := client.Balance(ctx, addr)
	if err != nil {
		d.ErrMessage = "Failed to load SUI balance."
		return d
	}
	d.Mist = bal
	return d
}
