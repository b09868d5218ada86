package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps values in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string]any
	readErr map[string]error
	writeErr error
	writes  int
	closed  bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]any),
		readErr: make(map[string]error),
	}
}

// GetIntList returns the list stored at key
func (m *MemoryStore) GetIntList(ctx context.Context, key string) ([]int, error) {
	v, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	return toIntList(key, v)
}

// GetString returns the string stored at key
func (m *MemoryStore) GetString(ctx context.Context, key string) (string, error) {
	v, err := m.lookup(key)
	if err != nil {
		return "", err
	}
	return toString(key, v)
}

// SetIntList replaces the list stored at key
func (m *MemoryStore) SetIntList(ctx context.Context, key string, values []int) error {
	list := make([]int, len(values))
	copy(list, values)
	return m.store(key, list)
}

// SetString replaces the string stored at key
func (m *MemoryStore) SetString(ctx context.Context, key, value string) error {
	return m.store(key, value)
}

// Unset removes key
func (m *MemoryStore) Unset(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

// SetRaw stores an arbitrary value, bypassing type checks
func (m *MemoryStore) SetRaw(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// FailRead makes reads of key return err
func (m *MemoryStore) FailRead(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr[key] = err
}

// FailWrites makes every write return err; nil restores writes
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes reports how many writes were attempted
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Close marks the store closed
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) lookup(key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	if err, ok := m.readErr[key]; ok {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return v, nil
}

func (m *MemoryStore) store(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.writes++
	if m.writeErr != nil {
		return fmt.Errorf("write %s: %w", key, m.writeErr)
	}
	m.values[key] = v
	return nil
}
