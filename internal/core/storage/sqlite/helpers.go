package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
)

// marshalConteos serializes the per-vehicle counter map for the conteos text
// column. An empty map stores "{}" so scans never deal with NULL.
func marshalConteos(conteos map[string]v1.Conteo) ([]byte, error) {
	if len(conteos) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(conteos)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conteos: %w", err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanOperativoRow scans a row in the shared column order into an Operativo.
// Compatible with both sql.Row and sql.Rows.
func scanOperativoRow(row scanner) (*v1.Operativo, error) {
	var op v1.Operativo
	var conteosJSON []byte
	var createdAt string

	err := row.Scan(
		&op.ID,
		&op.Fecha,
		&op.Lugar,
		&op.HoraInicio,
		&op.HoraFin,
		&op.AreasInvolucradas,
		&op.PersonalGuardiaUrbana,
		&op.PersonalTransito,
		&op.PersonalBromatologia,
		&op.Personal,
		&op.VehiculosControladosTotal,
		&conteosJSON,
		&op.MaximaGraduacionGL,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan operativo row: %w", err)
	}

	if len(conteosJSON) > 0 {
		if err := json.Unmarshal(conteosJSON, &op.Conteos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal conteos: %w", err)
		}
	}

	if createdAt != "" {
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		op.CreatedAt = t
	}

	return &op, nil
}

// formatCreatedAt renders the immutable creation timestamp for the text
// column.
func formatCreatedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
