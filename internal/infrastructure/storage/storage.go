package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore keeps voice note audio and rendered charts
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// AudioKey is the object key for a voice note's recording
func AudioKey(username, noteID, ext string) string {
	return fmt.Sprintf("audio/%s/%s%s", username, noteID, ext)
}

// ChartKey is the object key for a rendered chart. Charts are addressed by
// content, so equal distributions share one object.
func ChartKey(chartKey string) string {
	return fmt.Sprintf("charts/%s.png", chartKey)
}

// MemoryStore is an ObjectStore kept in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore creates an empty in-memory object store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject), baseURL: "memory://"}
}

// WithBaseURL makes URL return baseURL+key, e.g. a route that serves objects
// back through the API.
func (m *MemoryStore) WithBaseURL(baseURL string) *MemoryStore {
	m.baseURL = baseURL
	return m
}

// Put stores a copy of data
func (m *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// Get returns a copy of the stored bytes
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), obj.data...), nil
}

// URL returns the base URL joined with key; memory:// unless configured
func (m *MemoryStore) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", ErrObjectNotFound
	}
	return m.baseURL + key, nil
}

// Keys lists stored keys
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
