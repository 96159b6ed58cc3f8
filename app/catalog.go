// Package app contains the CatalogService, the use-case layer between the
// HTTP handlers and the document store.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"boilerref/adapters/metrics"
	"boilerref/domain/audit"
	"boilerref/domain/catalog"
	"boilerref/ports"
)

type actorKey struct{}

// WithActor attaches the authenticated user to the request context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the authenticated user, or "anonymous".
func ActorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return "anonymous"
}

// Stats summarizes the catalog for the dashboard metric cards.
type Stats struct {
	Boilers  int `json:"boilers"`
	Surfaces int `json:"surfaces"`
	Rows     int `json:"rows"`
}

// Options lists the distinct values of each filterable row dimension,
// in first-seen order, for building the filter widgets.
type Options struct {
	Stations    []string `json:"stations"`
	BoilerTypes []string `json:"boiler_types"`
	Steels      []string `json:"steels"`
	Categories  []string `json:"categories"`
	Systems     []string `json:"systems"`
}

// CatalogService implements the dashboard use cases. Every mutation is a
// full load, modify, save cycle over the single catalog document; the
// mutex serializes those cycles so concurrent edits cannot lose writes.
type CatalogService struct {
	store   ports.CatalogStore
	journal ports.AuditStore
	metrics *metrics.Collector
	clock   ports.Clock
	ids     ports.IDGenerator
	logger  zerolog.Logger

	mu sync.Mutex
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	store ports.CatalogStore,
	journal ports.AuditStore,
	collector *metrics.Collector,
	clock ports.Clock,
	ids ports.IDGenerator,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		store:   store,
		journal: journal,
		metrics: collector,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Rows loads the catalog and returns the flattened rows after applying the
// search query and the filter selection.
func (s *CatalogService) Rows(ctx context.Context, query string, sel catalog.Selection) ([]catalog.Row, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rows := catalog.Flatten(&c)
	rows = catalog.Search(rows, query)
	rows = catalog.FilterRows(rows, sel)
	return rows, nil
}

// AllRows returns the unfiltered flattened catalog.
func (s *CatalogService) AllRows(ctx context.Context) ([]catalog.Row, error) {
	return s.Rows(ctx, "", catalog.Selection{})
}

// Stats returns the catalog size counters and refreshes the gauges.
func (s *CatalogService) Stats(ctx context.Context) (Stats, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load catalog: %w", err)
	}

	st := Stats{
		Boilers:  len(c.Boilers),
		Surfaces: catalog.CountSurfaces(&c),
		Rows:     len(catalog.Flatten(&c)),
	}
	s.metrics.SetCatalogSize(st.Boilers, st.Surfaces)
	return st, nil
}

// FilterOptions returns the distinct values per dimension over all rows.
func (s *CatalogService) FilterOptions(ctx context.Context) (Options, error) {
	rows, err := s.AllRows(ctx)
	if err != nil {
		return Options{}, err
	}
	return OptionsFrom(rows), nil
}

// OptionsFrom computes filter options from an already-flattened row set.
func OptionsFrom(rows []catalog.Row) Options {
	return Options{
		Stations:    catalog.FilterValues(rows, func(r catalog.Row) string { return r.Station }),
		BoilerTypes: catalog.FilterValues(rows, func(r catalog.Row) string { return r.BoilerType }),
		Steels:      catalog.FilterValues(rows, func(r catalog.Row) string { return r.Steel }),
		Categories:  catalog.FilterValues(rows, func(r catalog.Row) string { return r.Category }),
		Systems:     catalog.FilterValues(rows, func(r catalog.Row) string { return r.System }),
	}
}

// Boilers returns the catalog's boilers in document order.
func (s *CatalogService) Boilers(ctx context.Context) ([]catalog.Boiler, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c.Boilers, nil
}

// AddBoiler appends a new boiler to the catalog. The id must be unique.
func (s *CatalogService) AddBoiler(ctx context.Context, b catalog.Boiler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := catalog.ValidateBoiler(&c, b); err != nil {
		return err
	}

	c.Boilers = append(c.Boilers, b)
	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	s.recordMutation(ctx, audit.ActionAddBoiler, b.ID, 1, b.Name)
	s.metrics.SetCatalogSize(len(c.Boilers), catalog.CountSurfaces(&c))
	s.logger.Info().Str("boiler_id", b.ID).Msg("boiler added")
	return nil
}

// AddSurface appends a new surface to an existing boiler. The surface name
// must be unique within the boiler.
func (s *CatalogService) AddSurface(ctx context.Context, boilerID string, sf catalog.Surface) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	b := catalog.FindBoiler(&c, boilerID)
	if err := catalog.ValidateSurface(b, sf); err != nil {
		return err
	}

	b.Surfaces = append(b.Surfaces, sf)
	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	s.recordMutation(ctx, audit.ActionAddSurface, boilerID, 1, sf.Name)
	s.metrics.SetCatalogSize(len(c.Boilers), catalog.CountSurfaces(&c))
	s.logger.Info().Str("boiler_id", boilerID).Str("surface", sf.Name).Msg("surface added")
	return nil
}

// Import parses an uploaded catalog fragment and merges it into the
// catalog, deduplicating by boiler id and surface name. It returns the
// number of records added. A malformed upload leaves the catalog untouched.
func (s *CatalogService) Import(ctx context.Context, data []byte, source string) (int, error) {
	var fragment catalog.Catalog
	if err := json.Unmarshal(data, &fragment); err != nil {
		s.metrics.ImportFailures.Inc()
		return 0, fmt.Errorf("parse upload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}

	added := catalog.Merge(&c, fragment)
	if added > 0 {
		if err := s.store.Save(ctx, c); err != nil {
			return 0, fmt.Errorf("save catalog: %w", err)
		}
	}

	s.recordMutation(ctx, audit.ActionImport, "", added, source)
	s.metrics.ImportsTotal.Inc()
	s.metrics.ImportRecords.Add(float64(added))
	s.metrics.SetCatalogSize(len(c.Boilers), catalog.CountSurfaces(&c))
	s.logger.Info().Int("added", added).Str("source", source).Msg("catalog import merged")
	return added, nil
}

// DeleteBoiler removes a boiler and all its surfaces from the catalog.
// Deleting an absent id is a logged no-op, reported as deleted=false so
// callers can tell the user nothing happened.
func (s *CatalogService) DeleteBoiler(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load catalog: %w", err)
	}

	idx := -1
	for i := range c.Boilers {
		if c.Boilers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Warn().Str("boiler_id", id).Msg("delete of unknown boiler ignored")
		return false, nil
	}

	removed := 1 + len(c.Boilers[idx].Surfaces)
	c.Boilers = append(c.Boilers[:idx], c.Boilers[idx+1:]...)
	if err := s.store.Save(ctx, c); err != nil {
		return false, fmt.Errorf("save catalog: %w", err)
	}

	s.recordMutation(ctx, audit.ActionDeleteBoiler, id, removed, "")
	s.metrics.SetCatalogSize(len(c.Boilers), catalog.CountSurfaces(&c))
	s.logger.Info().Str("boiler_id", id).Msg("boiler deleted")
	return true, nil
}

// Reset replaces the catalog with an empty one.
func (s *CatalogService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	removed := len(c.Boilers) + catalog.CountSurfaces(&c)

	if err := s.store.Save(ctx, catalog.Empty()); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	s.recordMutation(ctx, audit.ActionReset, "", removed, "")
	s.metrics.SetCatalogSize(0, 0)
	s.logger.Warn().Int("removed", removed).Msg("catalog reset")
	return nil
}

// Raw returns the catalog document as indented JSON, exactly as the store
// would persist it.
func (s *CatalogService) Raw(ctx context.Context) ([]byte, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Audit returns the most recent journal entries, newest first.
func (s *CatalogService) Audit(ctx context.Context, limit int) ([]audit.Entry, error) {
	return s.journal.List(ctx, limit)
}

// recordMutation appends one journal entry and bumps the mutation counter.
// Journal failures are logged, never fatal: the catalog write already
// succeeded and must not be reported as failed.
func (s *CatalogService) recordMutation(ctx context.Context, action audit.Action, boilerID string, records int, detail string) {
	e := audit.Entry{
		ID:       s.ids.New(),
		Action:   action,
		BoilerID: boilerID,
		Records:  records,
		Actor:    ActorFrom(ctx),
		Detail:   detail,
		At:       s.clock.Now().UTC(),
	}
	if err := s.journal.Append(ctx, e); err != nil {
		s.logger.Error().Err(err).Str("action", string(action)).Msg("audit append failed")
	}
	s.metrics.MutationsTotal.WithLabelValues(string(action)).Inc()
}
