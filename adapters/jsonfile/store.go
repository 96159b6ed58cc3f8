// Package jsonfile provides a CatalogStore backed by a single JSON
// document on disk. The whole catalog is read and rewritten wholesale on
// every operation; there is no locking and the last writer wins.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"boilerref/domain/catalog"
	"boilerref/ports"
)

// Store persists the catalog at a fixed path.
type Store struct {
	path string
}

// New creates a store for the document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog document. A missing file is an empty catalog,
// not an error.
func (s *Store) Load(ctx context.Context) (catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Catalog{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return catalog.Empty(), nil
	}
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var c catalog.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return catalog.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if c.Boilers == nil {
		c.Boilers = []catalog.Boiler{}
	}
	return c, nil
}

// Save writes the catalog document, creating the parent directory if
// needed. The document is pretty-printed with 2-space indent and keeps
// non-ASCII text literal. The write goes to a temp file in the same
// directory and is renamed into place, so a failed write leaves the old
// document untouched.
func (s *Store) Save(ctx context.Context, c catalog.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ ports.CatalogStore = (*Store)(nil)
