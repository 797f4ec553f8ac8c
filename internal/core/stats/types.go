package stats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Resumen is the aggregate over a filtered record set. Per-type totals are
// always computed for every vehicle type regardless of the vehicle selector;
// only the grand totals respect it.
type Resumen struct {
	TotalOperativos   int
	TotalVehiculos    int
	TotalAlcoholemia  int
	TotalActasSimples int
	TotalRetenciones  int
	TotalRuidos       int
	TotalFaltas       int

	// FaltasPorTipo maps vehicle-type key to that type's summed infractions.
	FaltasPorTipo map[string]int

	// TasaPositividad is the positive-breathalyzer percentage,
	// alcoholemia/vehiculos*100, exact until rounded for display.
	TasaPositividad decimal.Decimal

	// Advertencias carries data-quality findings; counters are reported as
	// stored, never corrected.
	Advertencias []Advertencia

	tipos []string
}

// Advertencia flags an implausible stored record without altering it.
type Advertencia struct {
	OperativoID int64  `json:"operativo_id"`
	Mensaje     string `json:"mensaje"`
}

// TasaRedondeada returns the positivity rate rounded to the given number of
// decimal places. The dashboard shows one place, server-side exports two.
func (r *Resumen) TasaRedondeada(places int32) decimal.Decimal {
	return r.TasaPositividad.Round(places)
}

// MarshalJSON emits the flat summary shape the dashboard consumes: fixed
// grand totals, one total_faltas_<tipo> key per vehicle type in catalog
// order, the rate rounded to one decimal place as a plain number, and the
// data-quality warnings when there are any.
func (r Resumen) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	fmt.Fprintf(&buf, `"total_operativos":%d`, r.TotalOperativos)
	fmt.Fprintf(&buf, `,"total_vehiculos":%d`, r.TotalVehiculos)
	fmt.Fprintf(&buf, `,"total_alcoholemia":%d`, r.TotalAlcoholemia)
	fmt.Fprintf(&buf, `,"total_actas_simples":%d`, r.TotalActasSimples)
	fmt.Fprintf(&buf, `,"total_retenciones":%d`, r.TotalRetenciones)
	fmt.Fprintf(&buf, `,"total_ruidos":%d`, r.TotalRuidos)
	for _, tipo := range r.tipos {
		fmt.Fprintf(&buf, `,"total_faltas_%s":%d`, tipo, r.FaltasPorTipo[tipo])
	}
	fmt.Fprintf(&buf, `,"total_faltas":%d`, r.TotalFaltas)
	fmt.Fprintf(&buf, `,"tasa_positividad":%s`, r.TasaRedondeada(1).String())
	if len(r.Advertencias) > 0 {
		advertencias, err := json.Marshal(r.Advertencias)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"advertencias":`)
		buf.Write(advertencias)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
