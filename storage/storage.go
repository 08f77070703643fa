package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by a Store when nothing is stored under a key.
var ErrNotFound = errors.New("not found")

// Store is a string-keyed blob store. Values are opaque to the store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CatalogState loads a raw ingredient catalog document.
type CatalogState interface {
	Load(ctx context.Context) ([]byte, error)
}

// TestStore is a simple in-memory implementation for testing
type TestStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func NewTestStore() *TestStore {
	return &TestStore{data: map[string][]byte{}}
}

func NewTestStoreWithData(key string, value []byte) *TestStore {
	s := NewTestStore()
	s.data[key] = value
	return s
}

func NewTestStoreWithError(getErr, setErr error) *TestStore {
	s := NewTestStore()
	s.getErr = getErr
	s.setErr = setErr
	return s
}

func (t *TestStore) Get(ctx context.Context, key string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.getErr != nil {
		return nil, t.getErr
	}
	v, ok := t.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (t *TestStore) Set(ctx context.Context, key string, value []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.setErr != nil {
		return t.setErr
	}
	t.data[key] = append([]byte(nil), value...)
	t.sets++
	return nil
}

// Raw returns what is stored under key, bypassing error injection.
func (t *TestStore) Raw(key string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.data[key]
	return v, ok
}

// Sets reports how many successful writes the store has seen.
func (t *TestStore) Sets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sets
}

// TestCatalogState is a simple in-memory implementation for testing
type TestCatalogState struct {
	data []byte
	err  error
}

func NewTestCatalogState(data []byte) *TestCatalogState {
	return &TestCatalogState{data: data}
}

func NewTestCatalogStateWithError() *TestCatalogState {
	return &TestCatalogState{err: errors.New("not found")}
}

func (t *TestCatalogState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}
