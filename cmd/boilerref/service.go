package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"boilerref/adapters/clock"
	"boilerref/adapters/idgen"
	"boilerref/adapters/jsonfile"
	"boilerref/adapters/memory"
	"boilerref/adapters/metrics"
	"boilerref/adapters/sqlite"
	"boilerref/app"
	"boilerref/config"
	"boilerref/ports"
)

// newCatalogService wires a CatalogService for one-shot CLI commands.
// The audit journal honors the config so CLI mutations are logged too; the
// returned cleanup closes it.
func newCatalogService(cfg *config.Config, logger zerolog.Logger) (*app.CatalogService, func(), error) {
	store := jsonfile.New(cfg.Catalog.Path)

	var journal ports.AuditStore
	cleanup := func() {}
	if cfg.Audit.Enabled {
		db, err := sqlite.Open(cfg.Audit.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit db: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate audit db: %w", err)
		}
		journal = sqlite.NewAuditStore(db)
		cleanup = func() { db.Close() }
	} else {
		journal = memory.NewAuditStore()
	}

	collector := metrics.NewWith(prometheus.NewRegistry())
	svc := app.NewCatalogService(store, journal, collector, clock.Real{}, idgen.UUID{}, logger)
	return svc, cleanup, nil
}
