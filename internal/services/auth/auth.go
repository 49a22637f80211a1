// Package auth stores token endpoint access keys in the OS keychain.
//
// Keys are stored per endpoint: the variant name, or DefaultEndpoint when a
// bare token-url is configured.
package auth

import (
	"errors"

	"nathanbeddoewebdev/tint/internal/util"
)

const (
	ServiceName = "tint"

	// DefaultEndpoint is the keychain account used for a configured
	// token-url that has no variant name.
	DefaultEndpoint = "default"
)

var ErrKeyNotFound = errors.New("access key not found")

type Store interface {
	SetKey(endpoint string, key string) error
	GetKey(endpoint string) (string, error)
	DeleteKey(endpoint string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeEndpoint maps an endpoint name to its keychain account.
func NormalizeEndpoint(endpoint string) string {
	if n := util.NormalizeKey(endpoint); n != "" {
		return n
	}
	return DefaultEndpoint
}

// LookupKey returns the stored key for endpoint, or "" if none is stored.
// Endpoints without a key are fetched anonymously.
func LookupKey(store Store, endpoint string) (string, error) {
	key, err := store.GetKey(endpoint)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	return key, err
}
