package store

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned when a key is not in the store.
var ErrKeyNotFound = errors.New("key not found")

// MemoryStore is an in-memory map that remembers the order keys were first added in.
// Every access goes through its lock, callers never see the underlying map.
type MemoryStore[K comparable, V any] struct {
	lock   sync.RWMutex
	values map[K]V
	keys   []K
}

// NewMemoryStore creates an empty store.
func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		values: make(map[K]V),
	}
}

// Set adds or replaces the value of k. A replaced key keeps its position.
func (s *MemoryStore[K, V]) Set(k K, v V) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.values[k]; !ok {
		s.keys = append(s.keys, k)
	}

	s.values[k] = v
}

// Get returns the value of k.
func (s *MemoryStore[K, V]) Get(k K) (V, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.values[k]

	return v, ok
}

// View calls fn with the value of k while holding the read lock.
func (s *MemoryStore[K, V]) View(k K, fn func(v V)) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.values[k]
	if !ok {
		return ErrKeyNotFound
	}

	fn(v)

	return nil
}

// Update calls fn with the value of k while holding the write lock.
// The value returned by fn replaces the stored one unless fn fails.
func (s *MemoryStore[K, V]) Update(k K, fn func(v V) (V, error)) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	v, ok := s.values[k]
	if !ok {
		return ErrKeyNotFound
	}

	updated, err := fn(v)
	if err != nil {
		return err
	}

	s.values[k] = updated

	return nil
}

// Delete removes k. It reports whether k was present.
func (s *MemoryStore[K, V]) Delete(k K) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.values[k]; !ok {
		return false
	}

	delete(s.values, k)

	for i, key := range s.keys {
		if key == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)

			break
		}
	}

	return true
}

// Keys returns the keys in the order they were first added.
func (s *MemoryStore[K, V]) Keys() []K {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]K, len(s.keys))
	copy(keys, s.keys)

	return keys
}

// Len returns the number of keys.
func (s *MemoryStore[K, V]) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.values)
}
