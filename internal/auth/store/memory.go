package store

import (
	"context"
	"sync"

	"github.com/siglink-dev/siglink-gate/pkg/schema"
)

type memoryStore struct {
	mu    sync.RWMutex
	items map[string]schema.AuthRecord
}

// NewMemory builds an in-memory record store.
func NewMemory() Store {
	return &memoryStore{items: make(map[string]schema.AuthRecord)}
}

func (s *memoryStore) Put(_ context.Context, rec schema.AuthRecord) error {
	if rec.Signature == "" {
		return ErrEmptySignature
	}
	s.mu.Lock()
	s.items[rec.Signature] = rec
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Get(_ context.Context, signature string) (schema.AuthRecord, error) {
	s.mu.RLock()
	rec, ok := s.items[signature]
	s.mu.RUnlock()
	if !ok {
		return schema.AuthRecord{}, ErrRecordNotFound
	}
	return rec, nil
}

func (s *memoryStore) Delete(_ context.Context, signature string) error {
	s.mu.Lock()
	delete(s.items, signature)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sigs := make([]string, 0, len(s.items))
	for sig := range s.items {
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func (s *memoryStore) Stats(_ context.Context) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"type":  "memory",
		"total": len(s.items),
	}, nil
}

func (s *memoryStore) Close(context.Context) error {
	return nil
}
