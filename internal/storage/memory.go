package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV implementation used by tests and as a scratch
// store for dry runs. It is safe for concurrent use.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites makes every Set/Delete return ErrWriteFailed, for
	// exercising the fail-soft paths in callers.
	FailWrites bool
	// FailReads makes every Get return ErrReadFailed.
	FailReads bool
}

// Injected failure errors for tests.
var (
	ErrReadFailed  = errInjected("injected read failure")
	ErrWriteFailed = errInjected("injected write failure")
)

type errInjected string

func (e errInjected) Error() string { return string(e) }

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value stored under key, and whether the key existed.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	if m.FailReads {
		return "", false, ErrReadFailed
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if m.FailWrites {
		return ErrWriteFailed
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes key from the store.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if m.FailWrites {
		return ErrWriteFailed
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
