package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yndnr/pairlink-go/internal/server/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairlink.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http:
    addr: "0.0.0.0:8080"
pairing:
  scan_timeout: 45s
  code_length: 10
log:
  level: debug
`)

	cfg := config.Default()
	loader := NewLoader(WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Addr != "0.0.0.0:8080" {
		t.Errorf("HTTP.Addr = %q, want 0.0.0.0:8080", cfg.Server.HTTP.Addr)
	}
	if cfg.Pairing.ScanTimeout != 45*time.Second {
		t.Errorf("ScanTimeout = %v, want 45s", cfg.Pairing.ScanTimeout)
	}
	if cfg.Pairing.CodeLength != 10 {
		t.Errorf("CodeLength = %d, want 10", cfg.Pairing.CodeLength)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Pairing.PairTimeout != config.DefaultPairTimeout {
		t.Errorf("PairTimeout = %v, want default %v", cfg.Pairing.PairTimeout, config.DefaultPairTimeout)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("PAIRLINK_SERVER__HTTP__ADDR", "10.0.0.1:9090")
	t.Setenv("PAIRLINK_PAIRING__SCAN_TIMEOUT", "90s")
	t.Setenv("PAIRLINK_LOG__LEVEL", "warn")

	cfg := config.Default()
	loader := NewLoader()
	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Addr != "10.0.0.1:9090" {
		t.Errorf("HTTP.Addr = %q, want 10.0.0.1:9090", cfg.Server.HTTP.Addr)
	}
	if cfg.Pairing.ScanTimeout != 90*time.Second {
		t.Errorf("ScanTimeout = %v, want 90s", cfg.Pairing.ScanTimeout)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
log:
  level: debug
`)
	t.Setenv("PAIRLINK_LOG__LEVEL", "error")

	cfg := config.Default()
	loader := NewLoader(WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want env to win over file", cfg.Log.Level)
	}
}

func TestLoader_LoadMap(t *testing.T) {
	cfg := config.Default()
	loader := NewLoader()
	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Flags are layered last and win.
	if err := loader.LoadMap(map[string]any{
		"server.http.addr": "127.0.0.1:7070",
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := loader.Unmarshal(cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Server.HTTP.Addr != "127.0.0.1:7070" {
		t.Errorf("HTTP.Addr = %q, want flag value", cfg.Server.HTTP.Addr)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(WithConfigFile("/nonexistent/pairlink.yaml"))
	if err := loader.Load(config.Default()); err == nil {
		t.Error("Load() with missing file error = nil, want error")
	}
}

func TestLoader_IsLoaded(t *testing.T) {
	loader := NewLoader()
	if loader.IsLoaded() {
		t.Error("IsLoaded() = true before Load()")
	}
	if err := loader.Load(config.Default()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loader.IsLoaded() {
		t.Error("IsLoaded() = false after Load()")
	}
}
