package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"boilerref/domain/catalog"
)

// maxUploadBytes bounds import payloads. The whole catalog is one JSON
// document, so anything near this size is not a plausible fragment.
const maxUploadBytes = 16 << 20

// APIRows returns the flattened rows after search and filtering.
// Query parameters: q plus repeatable station, type, steel, category, system.
func (h *Handler) APIRows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalog.Rows(r.Context(), r.URL.Query().Get("q"), parseSelection(r.URL.Query()))
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	if rows == nil {
		rows = []catalog.Row{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":  rows,
		"count": len(rows),
	})
}

// APIStats returns the catalog size counters.
func (h *Handler) APIStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.catalog.Stats(r.Context())
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// APIOptions returns the distinct filter values per dimension.
func (h *Handler) APIOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.catalog.FilterOptions(r.Context())
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// APIRaw returns the catalog document exactly as persisted.
func (h *Handler) APIRaw(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Raw(r.Context())
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// APIAudit returns the most recent journal entries, newest first.
func (h *Handler) APIAudit(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.catalog.Audit(r.Context(), limit)
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// APIAddBoiler creates a boiler from a JSON body.
func (h *Handler) APIAddBoiler(w http.ResponseWriter, r *http.Request) {
	var b catalog.Boiler
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.AddBoiler(r.Context(), b); err != nil {
		h.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// APIAddSurface adds a surface to the boiler in the path.
func (h *Handler) APIAddSurface(w http.ResponseWriter, r *http.Request) {
	boilerID := chi.URLParam(r, "id")

	var s catalog.Surface
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.AddSurface(r.Context(), boilerID, s); err != nil {
		h.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// APIDeleteBoiler removes a boiler. Unknown ids are a no-op, matching the
// service semantics.
func (h *Handler) APIDeleteBoiler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.DeleteBoiler(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.apiError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// APIImport merges a catalog fragment posted as the request body.
func (h *Handler) APIImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unreadable body")
		return
	}

	added, err := h.catalog.Import(r.Context(), data, "api")
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}

// APIReset empties the catalog.
func (h *Handler) APIReset(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reset(r.Context()); err != nil {
		h.apiError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// apiError maps domain errors onto HTTP status codes.
func (h *Handler) apiError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, code, err.Error())
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrMissingID), errors.Is(err, catalog.ErrMissingName):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, catalog.ErrBoilerNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, catalog.ErrBoilerExists), errors.Is(err, catalog.ErrSurfaceExists):
		return http.StatusConflict, "conflict"
	case isParseError(err):
		return http.StatusBadRequest, "invalid_document"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// isParseError recognizes the service's upload parse failures.
func isParseError(err error) bool {
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syn) || errors.As(err, &typ)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
