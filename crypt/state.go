package crypt

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateState returns a URL-safe random string built from n random bytes.
func GenerateState(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
