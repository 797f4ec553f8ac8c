package v1

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Counter field name prefixes. The legacy wire format flattens per-vehicle
// counters into keys like "actas_simples_auto"; the suffix is the vehicle
// type key from the catalog.
const (
	PrefixActasSimples        = "actas_simples_"
	PrefixRetencionDoc        = "retencion_doc_"
	PrefixAlcoholemiaPositiva = "alcoholemia_positiva_"
	PrefixActasRuido          = "actas_ruido_"
)

// Operativo is one logged traffic-control operation.
// It separates immutable store-assigned attributes (ID, CreatedAt) from the
// editable record fields submitted by the form.
type Operativo struct {
	// ID is assigned by the record store on create and never changes.
	ID int64 `json:"id"`

	// Fecha is the calendar day of the operation, stored as text because the
	// two backends historically persisted several formats (ISO, D/M/YYYY,
	// spreadsheet serials). Parsing happens in the stats engine.
	Fecha string `json:"fecha"`

	Lugar      string `json:"lugar,omitempty"`
	HoraInicio string `json:"hora_inicio,omitempty"`
	HoraFin    string `json:"hora_fin,omitempty"`

	// AreasInvolucradas is a comma-delimited tag list ("Guardia Urbana, Tránsito").
	AreasInvolucradas string `json:"areas_involucradas,omitempty"`

	// Structured personnel counts. Personal is the deprecated free-text
	// descriptor kept for display fallback only.
	PersonalGuardiaUrbana Cantidad `json:"personal_guardia_urbana"`
	PersonalTransito      Cantidad `json:"personal_transito"`
	PersonalBromatologia  Cantidad `json:"personal_bromatologia"`
	Personal              string   `json:"personal,omitempty"`

	// VehiculosControladosTotal is independent of the infraction counters:
	// an inspected vehicle need not produce any citation.
	VehiculosControladosTotal Cantidad `json:"vehiculos_controlados_total"`

	// Conteos holds the four infraction counters per vehicle-type key.
	Conteos map[string]Conteo `json:"conteos,omitempty"`

	// MaximaGraduacionGL is the highest breathalyzer reading in g/L.
	// Zero means not recorded.
	MaximaGraduacionGL Graduacion `json:"maxima_graduacion_gl"`

	// CreatedAt is set by the store at insert time and never changes.
	CreatedAt time.Time `json:"created_at"`
}

// Conteo is the per-vehicle-type infraction breakdown.
type Conteo struct {
	ActasSimples        Cantidad `json:"actas_simples"`
	RetencionDoc        Cantidad `json:"retencion_doc"`
	AlcoholemiaPositiva Cantidad `json:"alcoholemia_positiva"`
	ActasRuido          Cantidad `json:"actas_ruido"`
}

// Total sums the four counters of one vehicle type.
func (c Conteo) Total() int {
	return int(c.ActasSimples) + int(c.RetencionDoc) + int(c.AlcoholemiaPositiva) + int(c.ActasRuido)
}

// IsZero reports whether every counter is zero.
func (c Conteo) IsZero() bool {
	return c.Total() == 0
}

// Validate checks the minimal record shape. The store enforced only
// "fecha NOT NULL"; all numeric junk is coerced, never rejected.
func (o *Operativo) Validate() error {
	if strings.TrimSpace(o.Fecha) == "" {
		return fmt.Errorf("fecha is required")
	}
	return nil
}

// Conteo returns the counter set for a vehicle type, zero-valued when absent.
func (o *Operativo) Conteo(tipo string) Conteo {
	if o.Conteos == nil {
		return Conteo{}
	}
	return o.Conteos[tipo]
}

// PersonalTotal derives the headcount from the structured sub-role counts.
func (o *Operativo) PersonalTotal() int {
	return int(o.PersonalGuardiaUrbana) + int(o.PersonalTransito) + int(o.PersonalBromatologia)
}

// TotalFaltas sums all four counters across every vehicle type in the record.
func (o *Operativo) TotalFaltas() int {
	total := 0
	for _, c := range o.Conteos {
		total += c.Total()
	}
	return total
}

// TotalAlcoholemia sums positive breathalyzer counts across all vehicle types.
func (o *Operativo) TotalAlcoholemia() int {
	total := 0
	for _, c := range o.Conteos {
		total += int(c.AlcoholemiaPositiva)
	}
	return total
}

// Areas splits the delimited tag string into trimmed, non-empty tags.
func (o *Operativo) Areas() []string {
	if strings.TrimSpace(o.AreasInvolucradas) == "" {
		return nil
	}
	parts := strings.Split(o.AreasInvolucradas, ",")
	areas := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			areas = append(areas, t)
		}
	}
	return areas
}

// TiposPresentes returns the vehicle-type keys present in the record, sorted.
func (o *Operativo) TiposPresentes() []string {
	tipos := make([]string, 0, len(o.Conteos))
	for tipo := range o.Conteos {
		tipos = append(tipos, tipo)
	}
	sort.Strings(tipos)
	return tipos
}

// operativoAlias avoids recursing into the custom JSON methods.
type operativoAlias Operativo

// UnmarshalJSON decodes an operativo tolerating both wire shapes: the nested
// "conteos" object and the legacy flat keys ("actas_simples_auto", ...).
// Nested counters win when both name the same vehicle type.
func (o *Operativo) UnmarshalJSON(data []byte) error {
	var alias operativoAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = Operativo(alias)
	foldFlatCounters(o, raw)
	return nil
}

// MarshalJSON emits the nested conteos object plus the flat legacy keys so
// pre-existing dashboard clients keep working unchanged.
func (o Operativo) MarshalJSON() ([]byte, error) {
	alias, err := json.Marshal(operativoAlias(o))
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage)
	if err := json.Unmarshal(alias, &out); err != nil {
		return nil, err
	}

	for tipo, c := range o.Conteos {
		out[PrefixActasSimples+tipo] = rawInt(int(c.ActasSimples))
		out[PrefixRetencionDoc+tipo] = rawInt(int(c.RetencionDoc))
		out[PrefixAlcoholemiaPositiva+tipo] = rawInt(int(c.AlcoholemiaPositiva))
		out[PrefixActasRuido+tipo] = rawInt(int(c.ActasRuido))
	}

	return json.Marshal(out)
}

func rawInt(n int) json.RawMessage {
	return json.RawMessage(strconv.Itoa(n))
}

// foldFlatCounters scans the raw key set for legacy flat counter fields and
// folds them into Conteos. A vehicle type already present in the nested map
// is left untouched.
func foldFlatCounters(o *Operativo, raw map[string]json.RawMessage) {
	type setter func(c *Conteo, v Cantidad)
	prefixes := []struct {
		prefix string
		set    setter
	}{
		{PrefixActasSimples, func(c *Conteo, v Cantidad) { c.ActasSimples = v }},
		{PrefixRetencionDoc, func(c *Conteo, v Cantidad) { c.RetencionDoc = v }},
		{PrefixAlcoholemiaPositiva, func(c *Conteo, v Cantidad) { c.AlcoholemiaPositiva = v }},
		{PrefixActasRuido, func(c *Conteo, v Cantidad) { c.ActasRuido = v }},
	}

	nested := make(map[string]bool, len(o.Conteos))
	for tipo := range o.Conteos {
		nested[tipo] = true
	}

	flat := make(map[string]Conteo)
	for key, val := range raw {
		for _, p := range prefixes {
			if !strings.HasPrefix(key, p.prefix) {
				continue
			}
			tipo := key[len(p.prefix):]
			if tipo == "" || nested[tipo] {
				continue
			}
			var v Cantidad
			// Coercion never fails; junk decodes to zero.
			_ = json.Unmarshal(val, &v)
			c := flat[tipo]
			p.set(&c, v)
			flat[tipo] = c
		}
	}

	if len(flat) == 0 {
		return
	}
	if o.Conteos == nil {
		o.Conteos = make(map[string]Conteo, len(flat))
	}
	for tipo, c := range flat {
		o.Conteos[tipo] = c
	}
}

// Cantidad is a non-negative integer counter with defensive decoding: JSON
// numbers, numeric strings, null, booleans, and garbage all coerce, with a
// zero fallback. The stores historically returned any of these.
type Cantidad int

func (c *Cantidad) UnmarshalJSON(data []byte) error {
	*c = Cantidad(coerceInt(data))
	return nil
}

// Graduacion is a non-negative breathalyzer reading (g/L) with the same
// zero-fallback decoding rules as Cantidad.
type Graduacion float64

func (g *Graduacion) UnmarshalJSON(data []byte) error {
	*g = Graduacion(coerceFloat(data))
	return nil
}

func coerceInt(data []byte) int {
	f := coerceFloat(data)
	if f <= 0 {
		return 0
	}
	return int(math.Floor(f))
}

func coerceFloat(data []byte) float64 {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clampReading(f)
	}

	// Quoted numeric strings: "3", " 0.85 ".
	var quoted string
	if err := json.Unmarshal(data, &quoted); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(quoted), 64); err == nil {
			return clampReading(f)
		}
	}

	return 0
}

// maxCoerced bounds coerced values so a huge cell or JSON number cannot
// overflow the float→int conversion into a negative counter. Anything past
// it is data-entry garbage, not a real count.
const maxCoerced = math.MaxInt32

func clampReading(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > maxCoerced {
		return maxCoerced
	}
	return f
}

// CantidadDe coerces an arbitrary decoded value (spreadsheet cells arrive as
// strings or floats) to a non-negative int.
func CantidadDe(v interface{}) Cantidad {
	return Cantidad(coerceAny(v, true))
}

// GraduacionDe coerces an arbitrary decoded value to a non-negative reading.
func GraduacionDe(v interface{}) Graduacion {
	return Graduacion(coerceAny(v, false))
}

func coerceAny(v interface{}, truncate bool) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	f = clampReading(f)
	if truncate {
		f = math.Floor(f)
	}
	return f
}
