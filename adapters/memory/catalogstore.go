// Package memory provides in-memory implementations of the storage ports,
// used by tests and the validate command.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"boilerref/domain/catalog"
	"boilerref/ports"
)

// CatalogStore holds the catalog document in memory.
type CatalogStore struct {
	mu      sync.RWMutex
	doc     []byte // serialized snapshot, mirrors the on-disk document
	LoadErr error  // if set, Load fails with this error
	SaveErr error  // if set, Save fails with this error
	SaveCnt int
}

// NewCatalogStore creates an empty in-memory store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

// NewCatalogStoreWith creates a store seeded with a catalog.
func NewCatalogStoreWith(c catalog.Catalog) *CatalogStore {
	s := &CatalogStore{}
	_ = s.Save(context.Background(), c)
	s.SaveCnt = 0
	return s
}

// Load returns a deep copy of the stored catalog, or an empty catalog if
// nothing was saved yet.
func (s *CatalogStore) Load(ctx context.Context) (catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LoadErr != nil {
		return catalog.Catalog{}, s.LoadErr
	}
	if s.doc == nil {
		return catalog.Empty(), nil
	}
	var c catalog.Catalog
	if err := json.Unmarshal(s.doc, &c); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Boilers == nil {
		c.Boilers = []catalog.Boiler{}
	}
	return c, nil
}

// Save replaces the stored catalog wholesale.
func (s *CatalogStore) Save(ctx context.Context, c catalog.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.doc = doc
	s.SaveCnt++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *CatalogStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SaveCnt
}

// Ensure interface compliance.
var _ ports.CatalogStore = (*CatalogStore)(nil)
