package v1

import (
	"strconv"
	"strings"
	"time"
)

// Fixed flat column names shared by the spreadsheet backend and the CSV
// export. Counter columns are derived from the vehicle-type catalog.
const (
	ColID                        = "id"
	ColFecha                     = "fecha"
	ColLugar                     = "lugar"
	ColHoraInicio                = "hora_inicio"
	ColHoraFin                   = "hora_fin"
	ColAreasInvolucradas         = "areas_involucradas"
	ColPersonalGuardiaUrbana     = "personal_guardia_urbana"
	ColPersonalTransito          = "personal_transito"
	ColPersonalBromatologia      = "personal_bromatologia"
	ColPersonal                  = "personal"
	ColVehiculosControladosTotal = "vehiculos_controlados_total"
	ColMaximaGraduacionGL        = "maxima_graduacion_gl"
	ColCreatedAt                 = "created_at"
)

// FlatHeaders builds the column list for the given vehicle types, matching
// the sheet layout of the original deployment: scalar fields first, then the
// four counter kinds each fanned out per vehicle type.
func FlatHeaders(tipos []string) []string {
	headers := []string{
		ColID, ColFecha, ColLugar, ColHoraInicio, ColHoraFin,
		ColAreasInvolucradas,
		ColPersonalGuardiaUrbana, ColPersonalTransito, ColPersonalBromatologia,
		ColPersonal, ColVehiculosControladosTotal,
	}
	for _, prefix := range []string{PrefixActasSimples, PrefixRetencionDoc, PrefixAlcoholemiaPositiva, PrefixActasRuido} {
		for _, tipo := range tipos {
			headers = append(headers, prefix+tipo)
		}
	}
	return append(headers, ColMaximaGraduacionGL, ColCreatedAt)
}

// FlatValue renders one column of the record as text. Unknown columns render
// empty so readers and writers with different catalogs stay compatible.
func (o *Operativo) FlatValue(column string) string {
	switch column {
	case ColID:
		return strconv.FormatInt(o.ID, 10)
	case ColFecha:
		return o.Fecha
	case ColLugar:
		return o.Lugar
	case ColHoraInicio:
		return o.HoraInicio
	case ColHoraFin:
		return o.HoraFin
	case ColAreasInvolucradas:
		return o.AreasInvolucradas
	case ColPersonalGuardiaUrbana:
		return strconv.Itoa(int(o.PersonalGuardiaUrbana))
	case ColPersonalTransito:
		return strconv.Itoa(int(o.PersonalTransito))
	case ColPersonalBromatologia:
		return strconv.Itoa(int(o.PersonalBromatologia))
	case ColPersonal:
		return o.Personal
	case ColVehiculosControladosTotal:
		return strconv.Itoa(int(o.VehiculosControladosTotal))
	case ColMaximaGraduacionGL:
		return strconv.FormatFloat(float64(o.MaximaGraduacionGL), 'f', -1, 64)
	case ColCreatedAt:
		if o.CreatedAt.IsZero() {
			return ""
		}
		return o.CreatedAt.UTC().Format(time.RFC3339)
	}

	if prefix, tipo, ok := splitCounterColumn(column); ok {
		c := o.Conteo(tipo)
		switch prefix {
		case PrefixActasSimples:
			return strconv.Itoa(int(c.ActasSimples))
		case PrefixRetencionDoc:
			return strconv.Itoa(int(c.RetencionDoc))
		case PrefixAlcoholemiaPositiva:
			return strconv.Itoa(int(c.AlcoholemiaPositiva))
		case PrefixActasRuido:
			return strconv.Itoa(int(c.ActasRuido))
		}
	}
	return ""
}

// FromFlat rebuilds a record from a column→cell mapping. Every numeric cell
// goes through the zero-fallback coercion; malformed cells never error.
func FromFlat(fields map[string]string) *Operativo {
	o := &Operativo{
		Fecha:                     fields[ColFecha],
		Lugar:                     fields[ColLugar],
		HoraInicio:                fields[ColHoraInicio],
		HoraFin:                   fields[ColHoraFin],
		AreasInvolucradas:         fields[ColAreasInvolucradas],
		Personal:                  fields[ColPersonal],
		PersonalGuardiaUrbana:     CantidadDe(fields[ColPersonalGuardiaUrbana]),
		PersonalTransito:          CantidadDe(fields[ColPersonalTransito]),
		PersonalBromatologia:      CantidadDe(fields[ColPersonalBromatologia]),
		VehiculosControladosTotal: CantidadDe(fields[ColVehiculosControladosTotal]),
		MaximaGraduacionGL:        GraduacionDe(fields[ColMaximaGraduacionGL]),
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(fields[ColID]), 10, 64); err == nil {
		o.ID = id
	}
	if ts, err := time.Parse(time.RFC3339, fields[ColCreatedAt]); err == nil {
		o.CreatedAt = ts
	}

	for column, cell := range fields {
		prefix, tipo, ok := splitCounterColumn(column)
		if !ok {
			continue
		}
		c := o.Conteo(tipo)
		v := CantidadDe(cell)
		switch prefix {
		case PrefixActasSimples:
			c.ActasSimples = v
		case PrefixRetencionDoc:
			c.RetencionDoc = v
		case PrefixAlcoholemiaPositiva:
			c.AlcoholemiaPositiva = v
		case PrefixActasRuido:
			c.ActasRuido = v
		}
		if o.Conteos == nil {
			o.Conteos = make(map[string]Conteo)
		}
		o.Conteos[tipo] = c
	}

	return o
}

func splitCounterColumn(column string) (prefix, tipo string, ok bool) {
	for _, p := range []string{PrefixActasSimples, PrefixRetencionDoc, PrefixAlcoholemiaPositiva, PrefixActasRuido} {
		if strings.HasPrefix(column, p) && len(column) > len(p) {
			return p, column[len(p):], true
		}
	}
	return "", "", false
}
