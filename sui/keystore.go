package sui

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Signature scheme flags as used in keystore entries and serialized signatures
const (
	FlagEd25519   byte = 0x00
	FlagSecp256k1 byte = 0x01
	FlagSecp256r1 byte = 0x02
)

var (
	// ErrUnsupportedScheme is returned for keystore entries that are not ed25519
	ErrUnsupportedScheme = errors.New("unsupported signature scheme")

	// ErrKeyNotFound is returned when an address has no key in the keystore
	ErrKeyNotFound = errors.New("address not found in keystore")
)

// intent prefix for TransactionData, version 0, app Sui
var txIntent = []byte{0, 0, 0}

// Key is one ed25519 keypair from the keystore
type Key struct {
	Address string
	priv    ed25519.PrivateKey
}

// PublicKey returns the ed25519 public key
func (k Key) PublicKey() ed25519.PublicKey {
	return k.priv.Public().(ed25519.PublicKey)
}

// SignTransaction signs BCS transaction bytes and returns the base64 serialized signature
func (k Key) SignTransaction(txBytes []byte) string {
	msg := make([]byte, 0, len(txIntent)+len(txBytes))
	msg = append(msg, txIntent...)
	msg = append(msg, txBytes...)
	digest := blake2b.Sum256(msg)

	sig := ed25519.Sign(k.priv, digest[:])
	pub := k.PublicKey()

	out := make([]byte, 0, 1+len(sig)+len(pub))
	out = append(out, FlagEd25519)
	out = append(out, sig...)
	out = append(out, pub...)
	return base64.StdEncoding.EncodeToString(out)
}

// DeriveAddress computes the Sui address of an ed25519 public key
func DeriveAddress(pub ed25519.PublicKey) string {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, FlagEd25519)
	buf = append(buf, pub...)
	sum := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(sum[:])
}

// ParseKey decodes a base64 keystore entry (flag || 32-byte seed)
func ParseKey(encoded string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Key{}, fmt.Errorf("decode key: %w", err)
	}
	if len(raw) != 1+ed25519.SeedSize {
		return Key{}, fmt.Errorf("decode key: unexpected length %d", len(raw))
	}
	switch raw[0] {
	case FlagEd25519:
	case FlagSecp256k1:
		return Key{}, fmt.Errorf("%w: secp256k1", ErrUnsupportedScheme)
	case FlagSecp256r1:
		return Key{}, fmt.Errorf("%w: secp256r1", ErrUnsupportedScheme)
	default:
		return Key{}, fmt.Errorf("%w: flag 0x%02x", ErrUnsupportedScheme, raw[0])
	}

	priv := ed25519.NewKeyFromSeed(raw[1:])
	k := Key{priv: priv}
	k.Address = DeriveAddress(k.PublicKey())
	return k, nil
}

// EncodeKey is the inverse of ParseKey
func EncodeKey(seed []byte) string {
	return base64.StdEncoding.EncodeToString(append([]byte{FlagEd25519}, seed...))
}

// Keystore is the set of usable keys from a Sui CLI keystore file
type Keystore struct {
	Path    string
	Keys    []Key
	Skipped []error // entries that could not be used
}

// DefaultKeystorePath returns the Sui CLI keystore location
func DefaultKeystorePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".sui", "sui_config", "sui.keystore")
}

// LoadKeystore reads a keystore file: a JSON array of base64 entries
func LoadKeystore(path string) (*Keystore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse keystore %s: %w", path, err)
	}

	ks := &Keystore{Path: path}
	for i, e := range entries {
		k, err := ParseKey(e)
		if err != nil {
			ks.Skipped = append(ks.Skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		ks.Keys = append(ks.Keys, k)
	}
	return ks, nil
}

// Addresses lists the addresses of every usable key
func (ks *Keystore) Addresses() []string {
	if ks == nil {
		return nil
	}
	out := make([]string, 0, len(ks.Keys))
	for _, k := range ks.Keys {
		out = append(out, k.Address)
	}
	return out
}

// Lookup finds the key for an address, case-insensitively
func (ks *Keystore) Lookup(address string) (Key, bool) {
	if ks == nil {
		return Key{}, false
	}
	for _, k := range ks.Keys {
		if strings.EqualFold(k.Address, address) {
			return k, true
		}
	}
	return Key{}, false
}
