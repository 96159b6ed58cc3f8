// Package web provides the SSR reference dashboard and the JSON API.
// All templates are inline; the binary serves everything itself.
// Stateless design, no server-side session storage.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"boilerref/adapters/metrics"
	"boilerref/app"
	"boilerref/config"
)

// Handler provides the dashboard endpoints.
type Handler struct {
	templates   map[string]*template.Template
	catalog     *app.CatalogService
	admin       config.AdminConfig
	metrics     *metrics.Collector
	promHandler http.Handler // /metrics exposition, nil when disabled
	promPath    string
	logger      zerolog.Logger
	startTime   time.Time
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Catalog        *app.CatalogService
	Admin          config.AdminConfig
	Metrics        *metrics.Collector
	MetricsHandler http.Handler // promhttp handler, nil disables /metrics
	MetricsPath    string
	Logger         zerolog.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(deps Deps) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	path := deps.MetricsPath
	if path == "" {
		path = "/metrics"
	}

	return &Handler{
		templates:   tmpl,
		catalog:     deps.Catalog,
		admin:       deps.Admin,
		metrics:     deps.Metrics,
		promHandler: deps.MetricsHandler,
		promPath:    path,
		logger:      deps.Logger,
		startTime:   time.Now(),
	}, nil
}

// Router returns the dashboard router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(h.loggingMiddleware)
	if h.metrics != nil {
		r.Use(h.metricsMiddleware)
	}

	// Read-only pages and endpoints
	r.Get("/", h.Dashboard)
	r.Get("/audit", h.AuditPage)
	r.Get("/raw", h.RawPage)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/healthz", h.Healthz)

	r.Get("/api/rows", h.APIRows)
	r.Get("/api/stats", h.APIStats)
	r.Get("/api/options", h.APIOptions)
	r.Get("/api/raw", h.APIRaw)
	r.Get("/api/audit", h.APIAudit)

	// Mutating endpoints, behind basic auth when configured
	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)

		// Form targets (browsers only POST; the body carries the boiler id)
		r.Post("/boilers", h.FormAddBoiler)
		r.Post("/surfaces", h.FormAddSurface)
		r.Post("/delete", h.FormDeleteBoiler)
		r.Post("/import", h.FormImport)
		r.Post("/reset", h.FormReset)

		r.Post("/api/boilers", h.APIAddBoiler)
		r.Post("/api/boilers/{id}/surfaces", h.APIAddSurface)
		r.Delete("/api/boilers/{id}", h.APIDeleteBoiler)
		r.Post("/api/import", h.APIImport)
		r.Post("/api/reset", h.APIReset)
	})

	if h.promHandler != nil {
		r.Method(http.MethodGet, h.promPath, h.promHandler)
	}

	return r
}

// Healthz reports liveness. A load failure means the catalog document is
// unreadable, which is the one dependency this service has.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.Stats(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unreadable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
