package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dkrylov/go-data-vault/models"
)

// memoryObjectRepository is a process-local [ObjectRepository] for tests and
// single-node development runs. It mirrors the SQL repository's semantics,
// including copy-on-read so callers cannot mutate stored state.
type memoryObjectRepository struct {
	mu      sync.RWMutex
	objects map[string]map[string]models.StoredObject
}

// NewMemoryObjectRepository constructs an empty in-memory repository.
func NewMemoryObjectRepository() ObjectRepository {
	return &memoryObjectRepository{
		objects: make(map[string]map[string]models.StoredObject),
	}
}

func (r *memoryObjectRepository) SaveObject(_ context.Context, space, path string, obj models.StoredObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spaceObjects, ok := r.objects[space]
	if !ok {
		spaceObjects = make(map[string]models.StoredObject)
		r.objects[space] = spaceObjects
	}
	spaceObjects[path] = models.StoredObject{
		Data:        append([]byte(nil), obj.Data...),
		ContentType: obj.ContentType,
	}
	return nil
}

func (r *memoryObjectRepository) GetObject(_ context.Context, space, path string) (models.StoredObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.objects[space][path]
	if !ok {
		return models.StoredObject{}, ErrObjectNotFound
	}
	return models.StoredObject{
		Data:        append([]byte(nil), obj.Data...),
		ContentType: obj.ContentType,
	}, nil
}

func (r *memoryObjectRepository) DeleteObject(_ context.Context, space, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objects[space][path]; !ok {
		return ErrObjectNotFound
	}
	delete(r.objects[space], path)
	return nil
}

func (r *memoryObjectRepository) ListObjects(_ context.Context, space, prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.objects[space]))
	for path := range r.objects[space] {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, strings.TrimPrefix(path, prefix))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
