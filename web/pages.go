package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"boilerref/app"
	"boilerref/domain/audit"
	"boilerref/domain/catalog"
)

type dashboardData struct {
	Title   string
	Message string
	Error   string
	Query   string
	Sel     catalog.Selection
	Options app.Options
	Stats   app.Stats
	Rows    []catalog.Row
	Boilers []catalog.Boiler
}

// Dashboard renders the main page: metric cards, search, filters, the
// flattened table and the data-entry forms.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	all, err := h.catalog.AllRows(ctx)
	if err != nil {
		h.renderError(w, err)
		return
	}

	stats, err := h.catalog.Stats(ctx)
	if err != nil {
		h.renderError(w, err)
		return
	}

	boilers, err := h.catalog.Boilers(ctx)
	if err != nil {
		h.renderError(w, err)
		return
	}

	sel := parseSelection(q)
	rows := catalog.Search(all, q.Get("q"))
	rows = catalog.FilterRows(rows, sel)

	data := dashboardData{
		Title:   "Справочник котлов",
		Message: q.Get("msg"),
		Error:   q.Get("err"),
		Query:   q.Get("q"),
		Sel:     sel,
		Options: app.OptionsFrom(all),
		Stats:   stats,
		Rows:    rows,
		Boilers: boilers,
	}
	h.render(w, "dashboard", data)
}

type auditData struct {
	Title   string
	Message string
	Error   string
	Entries []audit.Entry
}

// AuditPage renders the mutation journal, newest first.
func (h *Handler) AuditPage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.Audit(r.Context(), 200)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "audit", auditData{Title: "Журнал изменений", Entries: entries})
}

type rawData struct {
	Title   string
	Message string
	Error   string
	Raw     string
}

// RawPage renders the persisted catalog document.
func (h *Handler) RawPage(w http.ResponseWriter, r *http.Request) {
	raw, err := h.catalog.Raw(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, "raw", rawData{Title: "Документ каталога", Raw: string(raw)})
}

// ExportCSV streams the current selection as a CSV download. It accepts
// the same query parameters as the dashboard.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.catalog.Rows(r.Context(), q.Get("q"), parseSelection(q))
	if err != nil {
		h.renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="boilers_reference.csv"`)
	if err := app.WriteCSV(w, rows); err != nil {
		h.logger.Error().Err(err).Msg("csv export failed")
	}
}

// FormAddBoiler handles the add-boiler form and redirects back.
func (h *Handler) FormAddBoiler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "не удалось прочитать форму")
		return
	}

	b := parseBoilerForm(r.PostForm)
	if err := h.catalog.AddBoiler(r.Context(), b); err != nil {
		h.redirectError(w, r, userMessage(err))
		return
	}
	h.redirectOK(w, r, fmt.Sprintf("котёл %s добавлен", b.ID))
}

// FormAddSurface handles the add-surface form and redirects back.
func (h *Handler) FormAddSurface(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "не удалось прочитать форму")
		return
	}

	s, err := parseSurfaceForm(r.PostForm)
	if err != nil {
		h.redirectError(w, r, err.Error())
		return
	}

	boilerID := r.PostForm.Get("boiler_id")
	if err := h.catalog.AddSurface(r.Context(), boilerID, s); err != nil {
		h.redirectError(w, r, userMessage(err))
		return
	}
	h.redirectOK(w, r, fmt.Sprintf("поверхность %q добавлена", s.Name))
}

// FormDeleteBoiler handles the delete form and redirects back.
func (h *Handler) FormDeleteBoiler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "не удалось прочитать форму")
		return
	}

	id := r.PostForm.Get("boiler_id")
	deleted, err := h.catalog.DeleteBoiler(r.Context(), id)
	if err != nil {
		h.redirectError(w, r, userMessage(err))
		return
	}
	if !deleted {
		h.redirectError(w, r, fmt.Sprintf("котёл %s не найден, ничего не удалено", id))
		return
	}
	h.redirectOK(w, r, fmt.Sprintf("котёл %s удалён", id))
}

// FormImport handles the multipart JSON upload and redirects back with the
// number of merged records.
func (h *Handler) FormImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.redirectError(w, r, "не удалось прочитать файл")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.redirectError(w, r, "файл не выбран")
		return
	}
	defer file.Close()

	data, err := readUpload(file)
	if err != nil {
		h.redirectError(w, r, "не удалось прочитать файл")
		return
	}

	added, err := h.catalog.Import(r.Context(), data, header.Filename)
	if err != nil {
		h.redirectError(w, r, "файл не является корректным JSON-каталогом")
		return
	}
	h.redirectOK(w, r, fmt.Sprintf("импорт завершён: добавлено записей: %d", added))
}

// FormReset empties the catalog and redirects back.
func (h *Handler) FormReset(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reset(r.Context()); err != nil {
		h.redirectError(w, r, userMessage(err))
		return
	}
	h.redirectOK(w, r, "каталог очищен")
}

func readUpload(file multipart.File) ([]byte, error) {
	return io.ReadAll(io.LimitReader(file, maxUploadBytes))
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[name].Execute(w, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("template render failed")
	}
}

// renderError shows a load failure on a bare dashboard rather than a blank
// 500, so the operator sees what broke.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("page render failed")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	h.render(w, "dashboard", dashboardData{
		Title: "Справочник котлов",
		Error: "не удалось загрузить каталог: " + err.Error(),
	})
}

func (h *Handler) redirectOK(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?err="+url.QueryEscape(msg), http.StatusSeeOther)
}

// userMessage translates domain errors for the form flash banner.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, catalog.ErrMissingID):
		return "идентификатор котла обязателен"
	case errors.Is(err, catalog.ErrMissingName):
		return "название поверхности обязательно"
	case errors.Is(err, catalog.ErrBoilerExists):
		return "котёл с таким идентификатором уже существует"
	case errors.Is(err, catalog.ErrBoilerNotFound):
		return "котёл не найден"
	case errors.Is(err, catalog.ErrSurfaceExists):
		return "поверхность с таким названием уже есть у этого котла"
	default:
		return err.Error()
	}
}
