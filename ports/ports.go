// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"boilerref/domain/audit"
	"boilerref/domain/catalog"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// CatalogStore persists the catalog as one whole document.
// Load on a missing document returns an empty catalog, not an error.
// Save replaces the document wholesale; there is no partial update.
type CatalogStore interface {
	Load(ctx context.Context) (catalog.Catalog, error)
	Save(ctx context.Context, c catalog.Catalog) error
}

// AuditStore persists the mutation journal.
type AuditStore interface {
	// Append records one mutation.
	Append(ctx context.Context, e audit.Entry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]audit.Entry, error)
}
