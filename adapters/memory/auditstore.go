package memory

import (
	"context"
	"sync"

	"boilerref/domain/audit"
	"boilerref/ports"
)

// AuditStore keeps the mutation journal in memory.
type AuditStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
	Err     error // if set, Append and List fail with this error
}

// NewAuditStore creates an empty journal.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Append records one mutation.
func (s *AuditStore) Append(ctx context.Context, e audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.entries = append(s.entries, e)
	return nil
}

// List returns the most recent entries, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]audit.Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Ensure interface compliance.
var _ ports.AuditStore = (*AuditStore)(nil)
