package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "aeroswipe"
const keyringUser = "control-api"

// LoadToken returns the control-API token from the OS keyring, or "" when
// none is stored (auth disabled).
func LoadToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read control-api token: %w", err)
	}
	return token, nil
}

// GenerateToken creates a fresh random token, stores it in the keyring,
// and returns it.
func GenerateToken() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return "", fmt.Errorf("failed to store control-api token: %w", err)
	}
	return token, nil
}

// ClearToken removes the stored token, disabling control-API auth.
func ClearToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
