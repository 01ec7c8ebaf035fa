// Package security provides correlation-token minting and the keyed
// integrity tag that binds a token to the subject it was issued for.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

const (
	// tokenBytes is the entropy drawn per token.
	tokenBytes = 16
	// TokenHexLen is the length of a rendered token (lowercase hex).
	TokenHexLen = tokenBytes * 2
)

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewToken returns a fresh correlation token: 16 bytes from crypto/rand,
// rendered as 32 lowercase hex characters.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ValidToken reports whether s has the exact token format (32 lowercase hex
// characters). Callers must reject anything else before touching the store.
func ValidToken(s string) bool {
	return len(s) == TokenHexLen && tokenPattern.MatchString(s)
}
