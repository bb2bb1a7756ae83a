package api

import (
	"os"

	"github.com/99designs/keyring"
)

const (
	tokenEnvVar    = "MWIZ_API_TOKEN"
	keyringService = "mwiz"
	keyringTokenID = "api-token"
)

// ResolveToken finds the bearer token for the backend, if one is set. The
// environment variable wins; the OS keyring is the fallback. An empty
// string means unauthenticated, which is fine for local backends.
func ResolveToken() string {
	if token := os.Getenv(tokenEnvVar); token != "" {
		return token
	}

	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return ""
	}
	item, err := ring.Get(keyringTokenID)
	if err != nil {
		return ""
	}
	return string(item.Data)
}

// StoreToken saves the bearer token in the OS keyring.
func StoreToken(token string) error {
	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:   keyringTokenID,
		Label: "mwiz backend API token",
		Data:  []byte(token),
	})
}

// DeleteToken removes the bearer token from the OS keyring.
func DeleteToken() error {
	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return err
	}
	return ring.Remove(keyringTokenID)
}
