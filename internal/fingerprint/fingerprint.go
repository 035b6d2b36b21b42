// Package fingerprint derives the content key shared by the result cache,
// the known-fakes registry and the scan history.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Size is the length of a fingerprint in hex characters.
const Size = sha256.Size * 2

// Normalize returns the canonical form of content: Unicode NFC with
// surrounding whitespace removed. Inner whitespace and case are kept.
func Normalize(content string) string {
	return strings.TrimSpace(norm.NFC.String(content))
}

// Compute returns the SHA-256 hex digest of the normalized content.
func Compute(content string) string {
	sum := sha256.Sum256([]byte(Normalize(content)))
	return hex.EncodeToString(sum[:])
}
