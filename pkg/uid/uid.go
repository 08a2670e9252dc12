package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateGameID returns a random 32-character hex identifier for a simulation.
func GenerateGameID() string {
	// crypto/rand.Read never fails on supported platforms.
	id, _ := randomHex(16)
	return id
}

// GenerateTokenID returns a 64-character hex jti for an access token.
func GenerateTokenID() (string, error) {
	id, err := randomHex(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	return id, nil
}
