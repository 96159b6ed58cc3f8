package sqlite

import (
	"context"
	"time"

	"boilerref/domain/audit"
	"boilerref/ports"
)

// AuditStore implements ports.AuditStore using SQLite.
type AuditStore struct {
	db *DB
}

// NewAuditStore creates a new audit store.
func NewAuditStore(db *DB) *AuditStore {
	return &AuditStore{db: db}
}

// Append records one mutation.
func (s *AuditStore) Append(ctx context.Context, e audit.Entry) error {
	_, err := s.db.DB.ExecContext(ctx,
		`INSERT INTO audit_log (id, action, boiler_id, records, actor, detail, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Action), e.BoilerID, e.Records, e.Actor, e.Detail,
		e.At.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// List returns the most recent entries, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT id, action, boiler_id, records, actor, detail, at
		FROM audit_log ORDER BY at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var action, at string
		if err := rows.Scan(&e.ID, &action, &e.BoilerID, &e.Records, &e.Actor, &e.Detail, &at); err != nil {
			return nil, err
		}
		e.Action = audit.Action(action)
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Ensure interface compliance.
var _ ports.AuditStore = (*AuditStore)(nil)
