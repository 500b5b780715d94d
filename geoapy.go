// Package geoapy is a client for the ipgeolocation.io IPv4 geolocation
// API.
//
// The package-level functions mirror the register-once, use-everywhere
// workflow: RegisterKey persists the API key to the user config
// directory, after which Get and GetSelf work in any later process
// without re-registration. Under the hood each call constructs a
// [geoloc.Client] from the persisted key and the default file store;
// applications that want explicit configuration (custom endpoint,
// transport, store backend, logger) should construct their own client
// via [geoloc.NewClient].
//
//	if err := geoapy.RegisterKey("your-api-key"); err != nil { ... }
//
//	resp, err := geoapy.Get(ctx, "8.8.8.8", "country_name", "isp")
//	if err != nil { ... }
//	country, _ := resp.Value("country_name")
//	_ = resp.Cache(ctx) // persist for later
package geoapy

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
	"github.com/Xavi-Linux/geoapy/pkg/keystore"
	"github.com/Xavi-Linux/geoapy/pkg/store"
)

// appName is used for the config and cache directory names.
const appName = "geoapy"

// RegisterKey persists key to the default keystore
// (~/.config/geoapy/config.toml), overwriting any previous key.
func RegisterKey(key string) error {
	ks, err := keystore.New("")
	if err != nil {
		return err
	}
	return ks.Register(key)
}

// ListFields returns the provider's complete field catalog in
// documented order.
func ListFields() []string {
	return geoloc.Fields()
}

// Get looks up ip, optionally restricted to the given catalog fields.
// It fails with KEY_NOT_REGISTERED before any network call when no key
// has been registered.
func Get(ctx context.Context, ip string, fields ...string) (*geoloc.Response, error) {
	client, err := DefaultClient()
	if err != nil {
		return nil, err
	}
	return client.Lookup(ctx, ip, geoloc.Options{Fields: fields})
}

// GetSelf looks up the caller's own public address.
func GetSelf(ctx context.Context, fields ...string) (*geoloc.Response, error) {
	client, err := DefaultClient()
	if err != nil {
		return nil, err
	}
	return client.LookupSelf(ctx, geoloc.Options{Fields: fields})
}

// DefaultClient builds a client from the persisted key and the default
// file store. It fails with KEY_NOT_REGISTERED when no key has been
// registered.
func DefaultClient() (*geoloc.Client, error) {
	ks, err := keystore.New("")
	if err != nil {
		return nil, err
	}
	key, err := ks.Current()
	if err != nil {
		return nil, err
	}

	var backend store.Store
	if dir, err := CacheDir(); err == nil {
		if fs, err := store.NewFileStore(dir); err == nil {
			backend = fs
		}
	}
	if backend == nil {
		backend = store.NewNullStore()
	}

	return geoloc.NewClient(geoloc.Config{Key: key, Store: backend}), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/geoapy/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
