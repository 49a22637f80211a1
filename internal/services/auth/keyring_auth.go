package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

var _ Store = (*KeyringStore)(nil)

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetKey(endpoint string, key string) error {
	return keyring.Set(k.serviceName, NormalizeEndpoint(endpoint), key)
}

func (k *KeyringStore) GetKey(endpoint string) (string, error) {
	key, err := keyring.Get(k.serviceName, NormalizeEndpoint(endpoint))
	if err == nil {
		return key, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteKey(endpoint string) error {
	err := keyring.Delete(k.serviceName, NormalizeEndpoint(endpoint))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	return err
}
