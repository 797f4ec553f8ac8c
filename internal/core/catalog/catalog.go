// Package catalog holds the closed per-deployment set of vehicle types that
// the aggregation engine, reports, and exports iterate over. The set is
// loaded once at startup from YAML files; nothing in the engine hard-codes
// a particular pair of types.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// VehicleFilterAll is the selector value that includes every vehicle type.
const VehicleFilterAll = "all"

// TipoVehiculo is one catalog entry: a stable key used in persisted field
// names plus a human label for reports.
type TipoVehiculo struct {
	Clave    string `yaml:"clave"`
	Etiqueta string `yaml:"etiqueta"`
}

// Catalogo is an ordered, immutable-after-load vehicle-type set.
type Catalogo struct {
	tipos []TipoVehiculo
	index map[string]int
}

type rawCatalog struct {
	Tipos []TipoVehiculo `yaml:"tipos"`
}

// Default returns the minimum catalog every deployment started from.
func Default() *Catalogo {
	c, _ := New([]TipoVehiculo{
		{Clave: "auto", Etiqueta: "Autos"},
		{Clave: "moto", Etiqueta: "Motos"},
	})
	return c
}

// New builds a catalog, validating keys: non-empty, unique, and never the
// reserved selector value "all".
func New(tipos []TipoVehiculo) (*Catalogo, error) {
	if len(tipos) == 0 {
		return nil, fmt.Errorf("catalog must define at least one vehicle type")
	}

	c := &Catalogo{index: make(map[string]int, len(tipos))}
	for _, t := range tipos {
		clave := strings.TrimSpace(t.Clave)
		if clave == "" {
			return nil, fmt.Errorf("vehicle type with empty clave")
		}
		if clave == VehicleFilterAll {
			return nil, fmt.Errorf("vehicle type clave %q is reserved", VehicleFilterAll)
		}
		if _, exists := c.index[clave]; exists {
			return nil, fmt.Errorf("duplicate vehicle type clave %q", clave)
		}
		if strings.TrimSpace(t.Etiqueta) == "" {
			t.Etiqueta = clave
		}
		t.Clave = clave
		c.index[clave] = len(c.tipos)
		c.tipos = append(c.tipos, t)
	}
	return c, nil
}

// LoadDir loads the catalog from *.yaml files in dir. Files are merged in
// name order; a missing directory yields the default catalog, so a fresh
// checkout runs without any configuration.
func LoadDir(dir string) (*Catalogo, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir: %w", err)
	}

	var tipos []TipoVehiculo
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
		}

		var raw rawCatalog
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
		}
		tipos = append(tipos, raw.Tipos...)
	}

	if len(tipos) == 0 {
		return Default(), nil
	}
	return New(tipos)
}

// Claves returns the type keys in catalog order.
func (c *Catalogo) Claves() []string {
	claves := make([]string, len(c.tipos))
	for i, t := range c.tipos {
		claves[i] = t.Clave
	}
	return claves
}

// Tipos returns the full ordered entries.
func (c *Catalogo) Tipos() []TipoVehiculo {
	out := make([]TipoVehiculo, len(c.tipos))
	copy(out, c.tipos)
	return out
}

// Contiene reports whether clave is a catalog key.
func (c *Catalogo) Contiene(clave string) bool {
	_, ok := c.index[clave]
	return ok
}

// Etiqueta returns the display label for a type key, falling back to the key
// itself for types that appear in data but not in the catalog.
func (c *Catalogo) Etiqueta(clave string) string {
	if i, ok := c.index[clave]; ok {
		return c.tipos[i].Etiqueta
	}
	return clave
}

// ValidFilter reports whether v is a usable vehicle selector: empty, "all",
// or a catalog key.
func (c *Catalogo) ValidFilter(v string) bool {
	return v == "" || v == VehicleFilterAll || c.Contiene(v)
}
