package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// ErrNoSecret is returned when the master secret is empty.
var ErrNoSecret = errors.New("security: empty token secret")

// tagInfo labels the HKDF derivation so the signing key cannot collide with
// keys derived from the same secret for other purposes.
const tagInfo = "approval-relay/tag/v1"

// TagSigner computes and verifies the HMAC-SHA256 integrity tag over
// token + "|" + subject. The signing key is derived once from the master
// secret via HKDF-SHA256 and never leaves the process.
type TagSigner struct {
	key []byte
}

// NewTagSigner derives the signing key from the given master secret.
func NewTagSigner(secret string) (*TagSigner, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	key := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(tagInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return &TagSigner{key: key}, nil
}

// Sign returns the hex-encoded integrity tag for token and subject.
func (s *TagSigner) Sign(token, subject string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(token))
	mac.Write([]byte("|"))
	mac.Write([]byte(subject))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify performs constant-time comparison of tag against the independently
// recomputed expected tag. This is the single authorization gate on the
// decision-write path.
func (s *TagSigner) Verify(token, subject, tag string) bool {
	expected := s.Sign(token, subject)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(tag)) == 1
}
