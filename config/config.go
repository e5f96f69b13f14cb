package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"memory-nft-tui/nft"

	"github.com/samber/lo"
)

// Config represents the application configuration
type Config struct {
	RPCURLs     []RPCUrl        `json:"rpc_urls"`
	Deployments []Deployment    `json:"deployments"`
	Identities  []IdentityEntry `json:"identities"`
	Keystore    string          `json:"keystore,omitempty"`
	GasBudget   uint64          `json:"gas_budget,omitempty"`
	Logger      bool            `json:"logger"`
	LogFile     string          `json:"log_file,omitempty"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// IdentityEntry labels a keystore address; Active marks the connected one
type IdentityEntry struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	Active  bool   `json:"active"`
}

// Deployment is one published copy of the memory NFT package
type Deployment struct {
	Name            string `json:"name"`
	Network         string `json:"network"`
	PackageID       string `json:"package_id"`
	TemplateStoreID string `json:"template_store_id"`
	Active          bool   `json:"active"`
}

// NFT converts the entry to the request builder's deployment record
func (d Deployment) NFT() nft.Deployment {
	return nft.Deployment{
		Name:            d.Name,
		Network:         d.Network,
		PackageID:       d.PackageID,
		TemplateStoreID: d.TemplateStoreID,
	}
}

// DefaultPath returns the config file location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".memory-nft-config.json")
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Sui Testnet",
				URL:    "https://fullnode.testnet.sui.io:443",
				Active: true,
			},
		},
		Deployments: []Deployment{
			{
				Name:            "Memory NFT v2",
				Network:         "testnet",
				PackageID:       "0xe463bad101ad1d0b2f7d048a5cf7b946d73f9b831c4dbe90465ad9921f8a5374",
				TemplateStoreID: "0xa4741e999ca62a46e260aed19f7571f87a3207acca23f510e719c78681547a88",
				Active:          true,
			},
			{
				Name:            "Memory NFT v1",
				Network:         "testnet",
				PackageID:       "0x489563cb7a99e87528b871f6f5df62100e96374d7cfc9432af7907f119049151",
				TemplateStoreID: "0x0b8391f4a847b3c9b1ec9a4820939906c8520714dcf5f1b4b503f8ab3c33f4c0",
			},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// ActiveRPC returns the active endpoint, or the first one
func (c Config) ActiveRPC() (RPCUrl, bool) {
	if r, ok := lo.Find(c.RPCURLs, func(r RPCUrl) bool { return r.Active }); ok {
		return r, true
	}
	return lo.First(c.RPCURLs)
}

// ActiveDeployment returns the active deployment, or the first one
func (c Config) ActiveDeployment() (Deployment, bool) {
	if d, ok := lo.Find(c.Deployments, func(d Deployment) bool { return d.Active }); ok {
		return d, true
	}
	return lo.First(c.Deployments)
}

// ActiveIdentity returns the address marked as connected, if any
func (c Config) ActiveIdentity() string {
	e, _ := lo.Find(c.Identities, func(e IdentityEntry) bool { return e.Active })
	return e.Address
}

// IdentityName returns the nickname for an address
func (c Config) IdentityName(addr string) string {
	e, _ := lo.Find(c.Identities, func(e IdentityEntry) bool { return strings.EqualFold(e.Address, addr) })
	return e.Name
}

// SetActiveIdentity marks addr as the only active identity; empty disconnects
func (c *Config) SetActiveIdentity(addr string) {
	found := false
	for i := range c.Identities {
		c.Identities[i].Active = addr != "" && strings.EqualFold(c.Identities[i].Address, addr)
		found = found || c.Identities[i].Active
	}
	if addr != "" && !found {
		c.Identities = append(c.Identities, IdentityEntry{Address: addr, Active: true})
	}
}

// SetActiveDeployment marks the deployment at idx as the only active one
func (c *Config) SetActiveDeployment(idx int) {
	for i := range c.Deployments {
		c.Deployments[i].Active = i == idx
	}
}

// SetActiveRPC marks the endpoint at idx as the only active one
func (c *Config) SetActiveRPC(idx int) {
	for i := range c.RPCURLs {
		c.RPCURLs[i].Active = i == idx
	}
}

// SetIdentityName stores a nickname for addr, adding the entry if needed
func (c *Config) SetIdentityName(addr, name string) {
	for i := range c.Identities {
		if strings.EqualFold(c.Identities[i].Address, addr) {
			c.Identities[i].Name = name
			return
		}
	}
	c.Identities = append(c.Identities, IdentityEntry{Address: addr, Name: name})
}
