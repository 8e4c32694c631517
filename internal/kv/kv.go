// Package kv provides the flat string key-value namespace that backs all
// persisted notas data.
package kv

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrQuotaExceeded is returned by Set when a value does not fit the quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a string key-value namespace.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
	Close() error
}

// Memory is an in-process Store. It is used for tests and --ephemeral runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove implements Store. Removing a missing key is not an error.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys implements Store. Keys are returned sorted.
func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// quota wraps a Store and rejects oversized values.
type quota struct {
	Store
	max int
}

// WithQuota limits the size of any single value written through s.
// A max of zero or less disables the limit and returns s unchanged.
func WithQuota(s Store, max int) Store {
	if max <= 0 {
		return s
	}
	return &quota{Store: s, max: max}
}

// Set implements Store.
func (q *quota) Set(key, value string) error {
	if len(value) > q.max {
		return fmt.Errorf("set %q (%d bytes, limit %d): %w", key, len(value), q.max, ErrQuotaExceeded)
	}
	return q.Store.Set(key, value)
}
