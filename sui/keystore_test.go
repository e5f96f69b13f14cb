package sui

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func testSeed(b byte) []byte {
	return bytes.Repeat([]byte{b}, ed25519.SeedSize)
}

func writeKeystore(t *testing.T, entries []string) string {
	t.Helper()
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal keystore: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sui.keystore")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write keystore: %v", err)
	}
	return path
}

func TestParseKey(t *testing.T) {
	t.Run("ed25519 entry", func(t *testing.T) {
		k, err := ParseKey(EncodeKey(testSeed(7)))
		if err != nil {
			t.Fatalf("ParseKey failed: %v", err)
		}
		if !IsValidAddress(k.Address) || len(k.Address) != 66 {
			t.Errorf("unexpected address %s", k.Address)
		}
		want := ed25519.NewKeyFromSeed(testSeed(7)).Public().(ed25519.PublicKey)
		if !bytes.Equal(k.PublicKey(), want) {
			t.Error("public key does not match seed")
		}
	})

	for _, tt := range []struct {
		flag   byte
		scheme string
	}{
		{FlagSecp256k1, "secp256k1"},
		{FlagSecp256r1, "secp256r1"},
		{0x05, "flag 0x05"},
	} {
		t.Run(tt.scheme+" entry rejected", func(t *testing.T) {
			raw := append([]byte{tt.flag}, testSeed(1)...)
			_, err := ParseKey(base64.StdEncoding.EncodeToString(raw))
			if !errors.Is(err, ErrUnsupportedScheme) {
				t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.scheme) {
				t.Errorf("error %q does not name %s", err, tt.scheme)
			}
		})
	}

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseKey("not base64!"); err == nil {
			t.Error("expected error for invalid base64")
		}
		if _, err := ParseKey(base64.StdEncoding.EncodeToString([]byte{0, 1, 2})); err == nil {
			t.Error("expected error for short entry")
		}
	})
}

func TestDeriveAddressIsStable(t *testing.T) {
	k1, _ := ParseKey(EncodeKey(testSeed(9)))
	k2, _ := ParseKey(EncodeKey(testSeed(9)))
	k3, _ := ParseKey(EncodeKey(testSeed(10)))
	if k1.Address != k2.Address {
		t.Error("same seed produced different addresses")
	}
	if k1.Address == k3.Address {
		t.Error("different seeds produced the same address")
	}
}

func TestSignTransaction(t *testing.T) {
	k, err := ParseKey(EncodeKey(testSeed(3)))
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	txBytes := []byte("fake bcs transaction")

	sigB64 := k.SignTransaction(txBytes)
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		t.Fatalf("signature is not base64: %v", err)
	}
	if len(sig) != 1+ed25519.SignatureSize+ed25519.PublicKeySize {
		t.Fatalf("serialized signature length = %d", len(sig))
	}
	if sig[0] != FlagEd25519 {
		t.Errorf("flag = 0x%02x", sig[0])
	}
	if !bytes.Equal(sig[1+ed25519.SignatureSize:], k.PublicKey()) {
		t.Error("trailing public key mismatch")
	}

	digest := blake2b.Sum256(append([]byte{0, 0, 0}, txBytes...))
	if !ed25519.Verify(k.PublicKey(), digest[:], sig[1:1+ed25519.SignatureSize]) {
		t.Error("signature does not verify over the intent digest")
	}
}

func TestLoadKeystore(t *testing.T) {
	secp := base64.StdEncoding.EncodeToString(append([]byte{FlagSecp256k1}, testSeed(2)...))
	path := writeKeystore(t, []string{EncodeKey(testSeed(1)), secp, EncodeKey(testSeed(4))})

	ks, err := LoadKeystore(path)
	if err != nil {
		t.Fatalf("LoadKeystore failed: %v", err)
	}
	if len(ks.Keys) != 2 {
		t.Fatalf("expected 2 usable keys, got %d", len(ks.Keys))
	}
	if len(ks.Skipped) != 1 || !errors.Is(ks.Skipped[0], ErrUnsupportedScheme) {
		t.Errorf("unexpected skipped entries: %v", ks.Skipped)
	}

	addr := ks.Addresses()[1]
	if _, ok := ks.Lookup(strings.ToUpper(addr[2:])); ok {
		t.Error("lookup without 0x prefix should not match")
	}
	if k, ok := ks.Lookup("0x" + strings.ToUpper(addr[2:])); !ok || k.Address != addr {
		t.Error("case-insensitive lookup failed")
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadKeystore(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing keystore")
		}
	})
}

func TestNormalizeObjectID(t *testing.T) {
	tests := map[string]string{
		"0x2":   "0x0000000000000000000000000000000000000000000000000000000000000002",
		"0xABC": "0x0000000000000000000000000000000000000000000000000000000000000abc",
		"0xa4741e999ca62a46e260aed19f7571f87a3207acca23f510e719c78681547a88": "0xa4741e999ca62a46e260aed19f7571f87a3207acca23f510e719c78681547a88",
		"bogus": "bogus",
	}
	for in, want := range tests {
		if got := NormalizeObjectID(in); got != want {
			t.Errorf("NormalizeObjectID(%q) = %q, want %q", in, got, want)
		}
	}
}
