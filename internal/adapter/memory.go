package adapter

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dkrylov/go-data-vault/models"
)

// MemoryBackend is an in-memory [StorageBackend] for tests and offline use.
// All spaces live in one process; there is no authorization layer.
type MemoryBackend struct {
	mu     sync.RWMutex
	spaces map[string]map[string]models.StoredObject
	public map[string]map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		spaces: make(map[string]map[string]models.StoredObject),
		public: make(map[string]map[string][]byte),
	}
}

func (m *MemoryBackend) Put(_ context.Context, space, path string, obj models.StoredObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.spaces[space]
	if !ok {
		objects = make(map[string]models.StoredObject)
		m.spaces[space] = objects
	}
	objects[path] = models.StoredObject{
		Data:        append([]byte(nil), obj.Data...),
		ContentType: obj.ContentType,
	}
	return nil
}

func (m *MemoryBackend) Get(_ context.Context, space, path string) (models.StoredObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.spaces[space][path]
	if !ok {
		return models.StoredObject{}, ErrObjectNotFound
	}
	return models.StoredObject{
		Data:        append([]byte(nil), obj.Data...),
		ContentType: obj.ContentType,
	}, nil
}

func (m *MemoryBackend) Delete(_ context.Context, space, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.spaces[space][path]; !ok {
		return ErrObjectNotFound
	}
	delete(m.spaces[space], path)
	return nil
}

func (m *MemoryBackend) List(_ context.Context, space, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var paths []string
	for path := range m.spaces[space] {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, strings.TrimPrefix(path, prefix))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *MemoryBackend) PublicPut(_ context.Context, address, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.public[address]
	if !ok {
		objects = make(map[string][]byte)
		m.public[address] = objects
	}
	objects[path] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) PublicGet(_ context.Context, address, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.public[address][path]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), data...), nil
}
