package auth

import "sync"

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	mu   sync.Mutex
	keys map[string]string
}

var _ Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{keys: make(map[string]string)}
}

func (m *MockStore) SetKey(endpoint string, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[NormalizeEndpoint(endpoint)] = key
	return nil
}

func (m *MockStore) GetKey(endpoint string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.keys[NormalizeEndpoint(endpoint)]
	if !ok {
		return "", ErrKeyNotFound
	}
	return key, nil
}

func (m *MockStore) DeleteKey(endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account := NormalizeEndpoint(endpoint)
	if _, ok := m.keys[account]; !ok {
		return ErrKeyNotFound
	}
	delete(m.keys, account)
	return nil
}
