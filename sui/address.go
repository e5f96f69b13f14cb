package sui

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var addressRe = regexp.MustCompile("^0x[0-9a-fA-F]{1,64}$")

// IsValidAddress checks if s is a Sui address or object ID, short forms included
func IsValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// NormalizeObjectID left-pads an address or object ID to 32 bytes, lowercase.
// Invalid input is returned unchanged so the node reports the error.
func NormalizeObjectID(id string) string {
	if !IsValidAddress(id) {
		return id
	}
	return strings.ToLower(common.HexToHash(id).Hex())
}
