// Package settings stores the Shipi18n API key in the XDG data directory:
//
//	$XDG_DATA_HOME/shipi18n/auth.json  (default: ~/.local/share/shipi18n/)
//
// File permissions are 0600 (owner read/write only).
//
// Lookup order for the API key:
//  1. --api-key flag (highest priority)
//  2. SHIPI18N_API_KEY environment variable
//  3. This credential store
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dataDirName = "shipi18n"
	fileName    = "auth.json"
)

// EnvAPIKey is the environment variable consulted before the store.
const EnvAPIKey = "SHIPI18N_API_KEY"

// ErrNoAPIKey is returned when no API key can be found anywhere.
var ErrNoAPIKey = errors.New("no API key configured (set --api-key, " + EnvAPIKey + ", or run 'shipi18n auth login')")

// Credentials is the auth.json structure.
type Credentials struct {
	APIKey string `json:"apiKey"`
}

// dataDir returns the XDG data directory for shipi18n.
// Respects $XDG_DATA_HOME, falling back to ~/.local/share.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the auth.json file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// Load reads the credential store from disk.
// Returns empty credentials if the file doesn't exist or is invalid.
func Load() Credentials {
	path, err := filePath()
	if err != nil {
		return Credentials{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}
	}
	return creds
}

// Save writes the credential store to disk with 0600 permissions.
func Save(creds Credentials) error {
	path, err := filePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing auth file: %w", err)
	}
	return nil
}

// SetAPIKey stores the API key.
func SetAPIKey(key string) error {
	creds := Load()
	creds.APIKey = key
	return Save(creds)
}

// Remove deletes the credential store.
func Remove() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing auth file: %w", err)
	}
	return nil
}

// ResolveAPIKey finds the effective API key: flag value first, then the
// SHIPI18N_API_KEY environment variable, then the store. Returns
// ErrNoAPIKey when nothing is configured.
func ResolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvAPIKey); env != "" {
		return env, nil
	}
	if stored := Load().APIKey; stored != "" {
		return stored, nil
	}
	return "", ErrNoAPIKey
}

// MaskKey returns a masked version of a key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
