package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfigAndCatalog(t *testing.T) {
	root := t.TempDir()
	catDir := filepath.Join(root, "catalogo")
	requireNoError(t, os.MkdirAll(catDir, 0o755))

	requireNoError(t, os.WriteFile(filepath.Join(catDir, "tipos.yaml"), []byte(`
tipos:
  - clave: auto
    etiqueta: Autos
  - clave: moto
    etiqueta: Motos
  - clave: camion
    etiqueta: Camiones
`), 0o644))

	cfgPath := filepath.Join(root, "transito.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
server:
  port: 8080
  host: "127.0.0.1"
  mode: "release"
database:
  driver: "sqlite"
  path: "%s"
catalogo:
  dir: "%s"
backup:
  enabled: true
  interval: "12h"
  dir: "%s"
  keep: 3
`, filepath.Join(root, "transito.db"), catDir, filepath.Join(root, "backups"))), 0o644))

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if got := len(cfg.Tipos.Claves()); got != 3 {
		t.Fatalf("expected 3 catalog types, got %d", got)
	}
	if cfg.Dashboard.HistoryLimit != 10 {
		t.Fatalf("expected default history limit 10, got %d", cfg.Dashboard.HistoryLimit)
	}
}

func TestLoad_MissingCatalogDirUsesDefault(t *testing.T) {
	root := t.TempDir()

	cfgPath := filepath.Join(root, "transito.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
database:
  driver: "planilla"
  path: "%s"
catalogo:
  dir: "%s"
`, filepath.Join(root, "operativos.csv"), filepath.Join(root, "no-existe"))), 0o644))

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if got := cfg.Tipos.Claves(); len(got) != 2 || got[0] != "auto" || got[1] != "moto" {
		t.Fatalf("expected default catalog, got %v", got)
	}
}

func TestLoad_UnsupportedDriverFailsStartup(t *testing.T) {
	root := t.TempDir()

	cfgPath := filepath.Join(root, "transito.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
database:
  driver: "mysql"
  path: "transito.db"
`), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported database.driver") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestLoad_InvalidBackupIntervalFailsStartup(t *testing.T) {
	root := t.TempDir()

	cfgPath := filepath.Join(root, "transito.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
database:
  driver: "sqlite"
  path: "transito.db"
backup:
  enabled: true
  interval: "nope"
`), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "invalid backup.interval") {
		t.Fatalf("expected invalid backup interval error, got %v", err)
	}
}

func TestLoad_InvalidServerPortFailsStartup(t *testing.T) {
	root := t.TempDir()

	cfgPath := filepath.Join(root, "transito.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
server:
  port: -1
database:
  driver: "sqlite"
  path: "transito.db"
`), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "invalid server.port") {
		t.Fatalf("expected invalid server.port error, got %v", err)
	}
}

func TestLoad_DuplicateCatalogTypeFailsStartup(t *testing.T) {
	root := t.TempDir()
	catDir := filepath.Join(root, "catalogo")
	requireNoError(t, os.MkdirAll(catDir, 0o755))
	requireNoError(t, os.WriteFile(filepath.Join(catDir, "tipos.yaml"), []byte(`
tipos:
  - clave: auto
  - clave: auto
`), 0o644))

	cfgPath := filepath.Join(root, "transito.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
database:
  driver: "sqlite"
  path: "transito.db"
catalogo:
  dir: "%s"
`, catDir)), 0o644))

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "failed to load vehicle type catalog") {
		t.Fatalf("expected catalog load error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
