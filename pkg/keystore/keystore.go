// Package keystore persists the ipgeolocation.io API key for reuse
// across processes.
//
// The key is stored in a TOML config file under the user config
// directory (~/.config/geoapy/config.toml by default). Registration
// overwrites any previously stored key. No client-side validation of
// the key is performed; an invalid key only surfaces as an
// authentication failure from the provider at lookup time.
package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
)

const configFile = "config.toml"

// config is the on-disk shape of the key file.
type config struct {
	APIKey string `toml:"api_key"`
}

// Store is a file-based API key store.
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// New creates a key store rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/geoapy/
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "geoapy")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Register stores key, overwriting any previously registered key.
func (s *Store) Register(key string) error {
	if key == "" {
		return apierr.New(apierr.CodeInvalidInput, "API key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config{APIKey: key}); err != nil {
		return fmt.Errorf("encode key file: %w", err)
	}
	return nil
}

// Current returns the active key. It fails with KEY_NOT_REGISTERED if
// no key has ever been registered.
func (s *Store) Current() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return "", apierr.New(apierr.CodeKeyNotRegistered, "no API key registered (run 'geoapy key set <key>' first)")
	}
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}

	var cfg config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parse key file: %w", err)
	}
	if cfg.APIKey == "" {
		return "", apierr.New(apierr.CodeKeyNotRegistered, "no API key registered (run 'geoapy key set <key>' first)")
	}
	return cfg.APIKey, nil
}

// Delete removes the stored key. Deleting when no key exists is not an error.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove key file: %w", err)
	}
	return nil
}

// Path returns the key file path.
func (s *Store) Path() string {
	return filepath.Join(s.baseDir, configFile)
}
