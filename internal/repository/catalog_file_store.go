package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"quiz-automation/internal/domain"

	"github.com/spf13/afero"
)

// CatalogFileStore implements domain.CatalogRepository on a single JSON file.
// Read-modify-write cycles are serialized within the process.
type CatalogFileStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewCatalogFileStore creates a store for the catalog at path.
func NewCatalogFileStore(fs afero.Fs, path string) *CatalogFileStore {
	return &CatalogFileStore{fs: fs, path: path}
}

// Path returns the catalog file path.
func (s *CatalogFileStore) Path() string {
	return s.path
}

// Load implements domain.CatalogRepository
func (s *CatalogFileStore) Load(ctx context.Context) (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Update implements domain.CatalogRepository
func (s *CatalogFileStore) Update(ctx context.Context, fn func(*domain.Catalog) error) (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.read()
	if errors.Is(err, domain.ErrCatalogNotFound) {
		catalog = domain.NewCatalog()
	} else if err != nil {
		return nil, err
	}

	if err := fn(catalog); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := marshalDocument(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := writeFileAtomic(s.fs, s.path, data); err != nil {
		return nil, domain.NewStorageError("failed to save catalog", err)
	}
	return catalog, nil
}

func (s *CatalogFileStore) read() (*domain.Catalog, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, domain.NewStorageError("failed to read catalog", err)
	}

	catalog := domain.NewCatalog()
	if err := json.Unmarshal(data, catalog); err != nil {
		return nil, domain.NewStorageError("catalog is not valid JSON", err).WithContext("path", s.path)
	}
	return catalog, nil
}
