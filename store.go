// FILE: lixenwraith/envproxy/store.go
package envproxy

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"
)

// Store is the string-keyed, string-valued backing store read by an Accessor.
type Store interface {
	// Lookup returns the value stored under key and whether it exists.
	Lookup(key string) (string, bool)
	// Store sets key to value.
	Store(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Environ is the process environment.
type Environ struct{}

// Lookup implements Store.
func (Environ) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// Store implements Store.
func (Environ) Store(key, value string) error { return os.Setenv(key, value) }

// Delete implements Store.
func (Environ) Delete(key string) error { return os.Unsetenv(key) }

// MapStore is an in-memory Store, safe for concurrent use.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapStore returns a MapStore seeded with a copy of values.
func NewMapStore(values map[string]string) *MapStore {
	s := &MapStore{values: make(map[string]string, len(values))}
	maps.Copy(s.values, values)
	return s
}

// Lookup implements Store.
func (s *MapStore) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Store implements Store.
func (s *MapStore) Store(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// Delete implements Store.
func (s *MapStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *MapStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.values)
}

type priorValue struct {
	value   string
	existed bool
}

// Apply sets every physical key in values on store and returns a func that
// puts the previous values back, deleting keys that did not exist before.
// The restore func is safe to call more than once; only the first call acts.
//
// Scopes nest: when an inner scope touching the same keys is restored before
// the outer one, every key ends up with the value it had before the outer scope.
func Apply(store Store, values map[string]string) (restore func() error, err error) {
	if store == nil {
		store = Environ{}
	}

	keys := sortedKeys(values)
	prior := make(map[string]priorValue, len(keys))
	for _, key := range keys {
		v, ok := store.Lookup(key)
		prior[key] = priorValue{value: v, existed: ok}
	}

	var once sync.Once
	var restoreErr error
	restore = func() error {
		once.Do(func() {
			var errs []error
			for _, key := range keys {
				p := prior[key]
				if p.existed {
					errs = append(errs, store.Store(key, p.value))
				} else {
					errs = append(errs, store.Delete(key))
				}
			}
			restoreErr = errors.Join(errs...)
		})
		return restoreErr
	}

	for _, key := range keys {
		if err := store.Store(key, values[key]); err != nil {
			return restore, errors.Join(fmt.Errorf("failed to set %q: %w", key, err), restore())
		}
	}
	return restore, nil
}

// WithEnv applies values to store for the duration of fn. Prior values are
// restored on every exit path, including a panic in fn.
func WithEnv(store Store, values map[string]string, fn func() error) (err error) {
	restore, err := Apply(store, values)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to restore environment: %w", rerr))
		}
	}()
	return fn()
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
