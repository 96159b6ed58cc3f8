package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"boilerref/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "boilerref.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 10s
  write_timeout: 20s
  shutdown_timeout: 5s
catalog:
  path: /var/lib/boilerref/catalog.json
audit:
  enabled: true
  dsn: /var/lib/boilerref/audit.db
admin:
  user: operator
  password_bcrypt: "$2a$10$abcdefghijklmnopqrstuv"
logging:
  level: debug
  format: console
metrics:
  enabled: true
  path: /internal/metrics
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Server.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Catalog.Path != "/var/lib/boilerref/catalog.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if !cfg.Audit.Enabled || cfg.Audit.DSN != "/var/lib/boilerref/audit.db" {
		t.Errorf("Audit = %+v", cfg.Audit)
	}
	if !cfg.Admin.Enabled() {
		t.Error("Admin.Enabled() = false, want true")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "catalog:\n  path: data/boilers.json\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", got)
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Audit.DSN != "audit.db" {
		t.Errorf("Audit.DSN = %q, want audit.db", cfg.Audit.DSN)
	}
	if cfg.Admin.User != "admin" {
		t.Errorf("Admin.User = %q, want admin", cfg.Admin.User)
	}
	if cfg.Admin.Enabled() {
		t.Error("Admin.Enabled() = true with empty password hash")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_CATALOG_DIR", "/srv/catalogs")
	path := writeConfig(t, "catalog:\n  path: ${TEST_CATALOG_DIR}/boilers.json\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Path != "/srv/catalogs/boilers.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	t.Setenv("BOILERREF_SERVER_PORT", "9999")
	t.Setenv("BOILERREF_CATALOG_PATH", "/override/catalog.json")
	t.Setenv("BOILERREF_AUDIT_ENABLED", "true")
	t.Setenv("BOILERREF_LOG_LEVEL", "warn")

	path := writeConfig(t, `
server:
  port: 8081
catalog:
  path: /file/catalog.json
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/override/catalog.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled = false, want true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithFallbackMissingFile(t *testing.T) {
	t.Setenv("BOILERREF_SERVER_PORT", "7070")

	cfg, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadWithFallback: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "data/boilers_reference.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantSub string
	}{
		{
			name:    "bad port",
			yaml:    "server:\n  port: 99999\n",
			wantSub: "server.port",
		},
		{
			name:    "bad log level",
			yaml:    "logging:\n  level: verbose\n",
			wantSub: "logging.level",
		},
		{
			name:    "bad log format",
			yaml:    "logging:\n  format: xml\n",
			wantSub: "logging.format",
		},
		{
			name:    "bad metrics path",
			yaml:    "metrics:\n  path: metrics\n",
			wantSub: "metrics.path",
		},
		{
			name:    "malformed yaml",
			yaml:    "server: [not a map\n",
			wantSub: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}
