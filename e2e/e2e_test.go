// Package e2e provides end-to-end tests for the complete dashboard flow
// against a real JSON document store and a real SQLite audit journal.
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"boilerref/bootstrap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// setupApp assembles the full application with a temp catalog document and
// a temp SQLite journal, and serves its router via httptest.
func setupApp(t *testing.T) (*bootstrap.App, *httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.json")

	cfgPath := filepath.Join(dir, "boilerref.yaml")
	writeFile(t, cfgPath, `
server:
  host: 127.0.0.1
  port: 18080
catalog:
  path: `+catalogPath+`
audit:
  enabled: true
  dsn: `+filepath.Join(dir, "audit.db")+`
metrics:
  enabled: false
`)

	app, err := bootstrap.New(cfgPath)
	if err != nil {
		t.Fatalf("bootstrap.New: %v", err)
	}
	t.Cleanup(func() { app.Shutdown() })

	srv := httptest.NewServer(app.HTTPServer.Handler)
	t.Cleanup(srv.Close)

	return app, srv, catalogPath
}

// TestFullCatalogFlow walks the whole operator workflow:
// add a boiler and a surface, import a fragment, search, export CSV,
// delete, and verify the audit journal and the persisted document.
func TestFullCatalogFlow(t *testing.T) {
	_, srv, catalogPath := setupApp(t)
	client := &http.Client{Timeout: 5 * time.Second}

	// 1. Add a boiler.
	resp, err := client.Post(srv.URL+"/api/boilers", "application/json",
		strings.NewReader(`{"id":"tp-87","name":"ТП-87","station":"ТЭЦ-1"}`))
	if err != nil {
		t.Fatalf("add boiler: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add boiler status = %d", resp.StatusCode)
	}

	// 2. Add a surface with optional numerics.
	resp, err = client.Post(srv.URL+"/api/boilers/tp-87/surfaces", "application/json",
		strings.NewReader(`{"name":"Экраны топки","steel":"Ст20","pressure":155}`))
	if err != nil {
		t.Fatalf("add surface: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add surface status = %d", resp.StatusCode)
	}

	// 3. Import a fragment with one duplicate and one new boiler.
	resp, err = client.Post(srv.URL+"/api/import", "application/json",
		strings.NewReader(`{"boilers":[
			{"id":"tp-87","surfaces":[{"name":"Экраны топки"},{"name":"Ширмы"}]},
			{"id":"pk-41","surfaces":[{"name":"Экономайзер"}]}
		]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var imported map[string]int
	json.NewDecoder(resp.Body).Decode(&imported)
	resp.Body.Close()
	if imported["added"] != 2 {
		t.Fatalf("import added = %d, want 2", imported["added"])
	}

	// 4. Search case-insensitively in Cyrillic.
	resp, err = client.Get(srv.URL + "/api/rows?q=" + "%D1%81%D1%8220") // "ст20"
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var rows struct {
		Count int `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&rows)
	resp.Body.Close()
	if rows.Count != 1 {
		t.Errorf("search count = %d, want 1", rows.Count)
	}

	// 5. Export CSV.
	resp, err = client.Get(srv.URL + "/export.csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("export Content-Type = %q", ct)
	}
	resp.Body.Close()

	// 6. Delete the imported boiler.
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/boilers/pk-41", nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	// 7. Audit journal recorded every mutation, newest first.
	resp, err = client.Get(srv.URL + "/api/audit")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	var journal struct {
		Entries []struct {
			Action string `json:"action"`
		} `json:"entries"`
	}
	json.NewDecoder(resp.Body).Decode(&journal)
	resp.Body.Close()
	if len(journal.Entries) != 4 {
		t.Fatalf("journal entries = %d, want 4", len(journal.Entries))
	}
	if journal.Entries[0].Action != "delete_boiler" {
		t.Errorf("newest action = %q, want delete_boiler", journal.Entries[0].Action)
	}

	// 8. The document on disk holds exactly what survived.
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	doc := string(data)
	if !strings.Contains(doc, "tp-87") || strings.Contains(doc, "pk-41") {
		t.Errorf("persisted document wrong:\n%s", doc)
	}
	if !strings.Contains(doc, "Ширмы") {
		t.Error("imported surface missing from document")
	}
}

// TestRestartKeepsData verifies the document survives a full restart.
func TestRestartKeepsData(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.json")
	cfgPath := filepath.Join(dir, "boilerref.yaml")
	writeFile(t, cfgPath, `
server:
  host: 127.0.0.1
  port: 18081
catalog:
  path: `+catalogPath+`
metrics:
  enabled: false
`)

	app1, err := bootstrap.New(cfgPath)
	if err != nil {
		t.Fatalf("bootstrap.New: %v", err)
	}
	srv := httptest.NewServer(app1.HTTPServer.Handler)
	resp, err := http.Post(srv.URL+"/api/boilers", "application/json",
		strings.NewReader(`{"id":"tp-87"}`))
	if err != nil {
		t.Fatalf("add boiler: %v", err)
	}
	resp.Body.Close()
	srv.Close()
	app1.Shutdown()

	app2, err := bootstrap.New(cfgPath)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer app2.Shutdown()

	st, err := app2.Catalog.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Boilers != 1 {
		t.Errorf("Boilers after restart = %d, want 1", st.Boilers)
	}
}
