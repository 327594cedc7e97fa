package storage

import (
	"context"
	"errors"
	"sync"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
)

// StubImageStorage is an in-memory ImageStorage used in development and
// tests. Not suitable for production.
type StubImageStorage struct {
	// BaseURL is the base URL prefixed to returned image URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubImageStorage creates a new StubImageStorage
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubImageStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*StubImageStorage)(nil)

// Upload stores the image in memory and returns a fake public URL
func (s *StubImageStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()
	return s.BaseURL + "/" + storageKey, nil
}

// Delete removes the image from memory
func (s *StubImageStorage) Delete(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

// Exists reports whether the key was uploaded
func (s *StubImageStorage) Exists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	return ok, nil
}
