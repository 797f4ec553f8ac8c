package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, []string{"auto", "moto"}, c.Claves())
	require.Equal(t, "Autos", c.Etiqueta("auto"))
	require.Equal(t, "Motos", c.Etiqueta("moto"))
	require.True(t, c.Contiene("auto"))
	require.False(t, c.Contiene("camion"))
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		tipos   []TipoVehiculo
		wantErr string
	}{
		{
			name:    "empty set",
			tipos:   nil,
			wantErr: "at least one",
		},
		{
			name:    "blank clave",
			tipos:   []TipoVehiculo{{Clave: "  ", Etiqueta: "X"}},
			wantErr: "empty clave",
		},
		{
			name:    "reserved clave",
			tipos:   []TipoVehiculo{{Clave: "all", Etiqueta: "Todos"}},
			wantErr: "reserved",
		},
		{
			name: "duplicate clave",
			tipos: []TipoVehiculo{
				{Clave: "auto", Etiqueta: "Autos"},
				{Clave: "auto", Etiqueta: "Coches"},
			},
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tipos)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewFallbackLabel(t *testing.T) {
	c, err := New([]TipoVehiculo{{Clave: "camion"}})
	require.NoError(t, err)
	require.Equal(t, "camion", c.Etiqueta("camion"))
}

func TestLoadDirMissingUsesDefault(t *testing.T) {
	c, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Equal(t, []string{"auto", "moto"}, c.Claves())
}

func TestLoadDirMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-base.yaml"), []byte(`
tipos:
  - clave: auto
    etiqueta: Autos
  - clave: moto
    etiqueta: Motos
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-extra.yaml"), []byte(`
tipos:
  - clave: camion
    etiqueta: Camiones
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	c, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"auto", "moto", "camion"}, c.Claves())
	require.Equal(t, "Camiones", c.Etiqueta("camion"))
}

func TestLoadDirDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("tipos:\n  - clave: auto\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("tipos:\n  - clave: auto\n"), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")
}

func TestValidFilter(t *testing.T) {
	c := Default()
	require.True(t, c.ValidFilter(""))
	require.True(t, c.ValidFilter("all"))
	require.True(t, c.ValidFilter("moto"))
	require.False(t, c.ValidFilter("bicicleta"))
}
