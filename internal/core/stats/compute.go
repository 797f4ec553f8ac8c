// Package stats implements the aggregation engine: date parsing for the
// historical record formats, date-range and vehicle-type filtering, summary
// totals, ordering, and data-quality linting. It is pure computation over
// in-memory records and knows nothing about storage or HTTP.
package stats

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
)

// Compute filters records by f's date bounds, then aggregates. The vehicle
// selector gates only which per-type counters flow into the grand totals;
// per-type breakdowns always cover every catalog type plus any extra type
// keys present in the data. Running Compute twice over its own filtered
// input yields the same summary.
func Compute(records []*v1.Operativo, f Filtro, cat *catalog.Catalogo) *Resumen {
	filtered := Filter(records, f)

	tipos := cat.Claves()
	seen := make(map[string]bool, len(tipos))
	for _, t := range tipos {
		seen[t] = true
	}

	r := &Resumen{
		TotalOperativos: len(filtered),
		FaltasPorTipo:   make(map[string]int, len(tipos)),
	}
	for _, t := range tipos {
		r.FaltasPorTipo[t] = 0
	}

	var extra []string
	for _, op := range filtered {
		r.TotalVehiculos += int(op.VehiculosControladosTotal)

		for tipo, c := range op.Conteos {
			if !seen[tipo] {
				seen[tipo] = true
				extra = append(extra, tipo)
			}
			r.FaltasPorTipo[tipo] += c.Total()

			if !f.IncluyeTipo(tipo) {
				continue
			}
			r.TotalActasSimples += int(c.ActasSimples)
			r.TotalRetenciones += int(c.RetencionDoc)
			r.TotalAlcoholemia += int(c.AlcoholemiaPositiva)
			r.TotalRuidos += int(c.ActasRuido)
			r.TotalFaltas += c.Total()
		}

		r.Advertencias = append(r.Advertencias, lintOperativo(op)...)
	}

	sort.Strings(extra)
	r.tipos = append(tipos, extra...)

	if r.TotalVehiculos > 0 {
		r.TasaPositividad = decimal.NewFromInt(int64(r.TotalAlcoholemia)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(r.TotalVehiculos)))
	}
	return r
}

// Tipos returns the vehicle-type keys covered by the per-type breakdown:
// catalog order first, then any data-only types alphabetically.
func (r *Resumen) Tipos() []string {
	return r.tipos
}

// lintOperativo flags records whose summed infractions exceed the inspected
// vehicle count. Stored values are suspect but authoritative.
func lintOperativo(op *v1.Operativo) []Advertencia {
	faltas := op.TotalFaltas()
	if faltas <= int(op.VehiculosControladosTotal) {
		return nil
	}
	return []Advertencia{{
		OperativoID: op.ID,
		Mensaje: fmt.Sprintf("operativo %d registra %d faltas sobre %d vehículos controlados",
			op.ID, faltas, int(op.VehiculosControladosTotal)),
	}}
}
