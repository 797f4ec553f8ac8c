package stats

import (
	"time"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
)

// Filtro narrows which records and which vehicle types enter an aggregation.
// Desde and Hasta bound the record's fecha to whole local calendar days,
// inclusive on both ends; nil means unbounded. Vehiculo restricts the grand
// totals to one vehicle type; empty or "all" keeps every type.
type Filtro struct {
	Desde    *time.Time `json:"desde,omitempty"`
	Hasta    *time.Time `json:"hasta,omitempty"`
	Vehiculo string     `json:"vehiculo,omitempty"`
}

// RangoDias builds a date filter spanning the last n calendar days up to
// today, inclusive.
func RangoDias(n int, now time.Time) Filtro {
	desde := DiaInicio(now.AddDate(0, 0, -n))
	hasta := DiaFin(now)
	return Filtro{Desde: &desde, Hasta: &hasta}
}

// IncluyeFecha reports whether a record dated t passes the date bounds. The
// zero time (unparseable fecha) fails any bounded filter.
func (f Filtro) IncluyeFecha(t time.Time) bool {
	if f.Desde == nil && f.Hasta == nil {
		return true
	}
	if t.IsZero() {
		return false
	}
	if f.Desde != nil && t.Before(DiaInicio(*f.Desde)) {
		return false
	}
	if f.Hasta != nil && t.After(DiaFin(*f.Hasta)) {
		return false
	}
	return true
}

// IncluyeTipo reports whether a vehicle type's counters enter the grand
// totals under this filter.
func (f Filtro) IncluyeTipo(tipo string) bool {
	return f.Vehiculo == "" || f.Vehiculo == catalog.VehicleFilterAll || f.Vehiculo == tipo
}

// Filter returns the records whose fecha falls inside the date bounds. The
// vehicle selector never removes records; it only changes which counters
// Compute folds into the totals.
func Filter(records []*v1.Operativo, f Filtro) []*v1.Operativo {
	if f.Desde == nil && f.Hasta == nil {
		return records
	}
	out := make([]*v1.Operativo, 0, len(records))
	for _, r := range records {
		if f.IncluyeFecha(ParseFecha(r.Fecha)) {
			out = append(out, r)
		}
	}
	return out
}
