package storage

import (
	"context"
	"io"
	"sort"
	"sync"
)

// MemoryStorage keeps objects in a map. Setting RemoveErr makes Remove fail.
type MemoryStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	RemoveErr error
	removed   []string
}

var _ PhotoStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *MemoryStorage) Remove(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys...)
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	for _, k := range keys {
		delete(s.objects, k)
	}
	return nil
}

func (s *MemoryStorage) PublicURL(key string) string {
	return "/memory/" + key
}

// Removed lists every key passed to Remove, including failed attempts.
func (s *MemoryStorage) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

func (s *MemoryStorage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
