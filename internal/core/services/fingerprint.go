package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprintWindow is how much leading text participates in the hash.
// Documents re-scanned at different lengths still fingerprint the same
// as long as their opening content matches.
const fingerprintWindow = 2000

// Fingerprint computes the stable identity hash of extracted text:
// the first 2000 characters, lowercased, with whitespace runs collapsed
// to single spaces, hashed with SHA-256 and truncated to 16 hex digits.
//
// Empty text maps to the empty string, never to a hash - callers must
// branch on emptiness rather than compare hashes of empty inputs.
func Fingerprint(text string) string {
	if text == "" {
		return ""
	}

	window := text
	if len(window) > fingerprintWindow {
		window = window[:fingerprintWindow]
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(window)), " ")

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:16]
}
