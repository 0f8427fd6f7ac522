// Package token generates the opaque identifiers used as bearer
// capabilities: gallery access links and session IDs.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New returns a hex-encoded token of n random bytes (2n characters).
func New(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewAccessToken returns a 32-character gallery access token.
func NewAccessToken() (string, error) {
	return New(16)
}

// NewSessionID returns a 64-character session identifier.
func NewSessionID() (string, error) {
	return New(32)
}
