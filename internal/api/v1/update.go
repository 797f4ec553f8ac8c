package v1

import (
	"encoding/json"
)

// OperativoUpdate carries a partial update: only non-nil fields overwrite the
// stored record. ID and CreatedAt are immutable and have no counterpart here.
// A vehicle type present in Conteos replaces that type's whole counter set.
type OperativoUpdate struct {
	Fecha             *string `json:"fecha,omitempty"`
	Lugar             *string `json:"lugar,omitempty"`
	HoraInicio        *string `json:"hora_inicio,omitempty"`
	HoraFin           *string `json:"hora_fin,omitempty"`
	AreasInvolucradas *string `json:"areas_involucradas,omitempty"`

	PersonalGuardiaUrbana *Cantidad `json:"personal_guardia_urbana,omitempty"`
	PersonalTransito      *Cantidad `json:"personal_transito,omitempty"`
	PersonalBromatologia  *Cantidad `json:"personal_bromatologia,omitempty"`
	Personal              *string   `json:"personal,omitempty"`

	VehiculosControladosTotal *Cantidad         `json:"vehiculos_controlados_total,omitempty"`
	Conteos                   map[string]Conteo `json:"conteos,omitempty"`
	MaximaGraduacionGL        *Graduacion       `json:"maxima_graduacion_gl,omitempty"`
}

type operativoUpdateAlias OperativoUpdate

// UnmarshalJSON accepts the legacy flat counter keys on updates too, folding
// them into Conteos alongside any nested object.
func (u *OperativoUpdate) UnmarshalJSON(data []byte) error {
	var alias operativoUpdateAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = OperativoUpdate(alias)

	shim := Operativo{Conteos: u.Conteos}
	foldFlatCounters(&shim, raw)
	u.Conteos = shim.Conteos
	return nil
}

// IsEmpty reports whether the update touches nothing.
func (u *OperativoUpdate) IsEmpty() bool {
	return u.Fecha == nil && u.Lugar == nil && u.HoraInicio == nil && u.HoraFin == nil &&
		u.AreasInvolucradas == nil && u.PersonalGuardiaUrbana == nil && u.PersonalTransito == nil &&
		u.PersonalBromatologia == nil && u.Personal == nil && u.VehiculosControladosTotal == nil &&
		len(u.Conteos) == 0 && u.MaximaGraduacionGL == nil
}

// Apply merges the update into an existing record. Only supplied fields are
// overwritten; id and created_at are never touched.
func (u *OperativoUpdate) Apply(o *Operativo) {
	if u.Fecha != nil {
		o.Fecha = *u.Fecha
	}
	if u.Lugar != nil {
		o.Lugar = *u.Lugar
	}
	if u.HoraInicio != nil {
		o.HoraInicio = *u.HoraInicio
	}
	if u.HoraFin != nil {
		o.HoraFin = *u.HoraFin
	}
	if u.AreasInvolucradas != nil {
		o.AreasInvolucradas = *u.AreasInvolucradas
	}
	if u.PersonalGuardiaUrbana != nil {
		o.PersonalGuardiaUrbana = *u.PersonalGuardiaUrbana
	}
	if u.PersonalTransito != nil {
		o.PersonalTransito = *u.PersonalTransito
	}
	if u.PersonalBromatologia != nil {
		o.PersonalBromatologia = *u.PersonalBromatologia
	}
	if u.Personal != nil {
		o.Personal = *u.Personal
	}
	if u.VehiculosControladosTotal != nil {
		o.VehiculosControladosTotal = *u.VehiculosControladosTotal
	}
	if u.MaximaGraduacionGL != nil {
		o.MaximaGraduacionGL = *u.MaximaGraduacionGL
	}
	for tipo, c := range u.Conteos {
		if o.Conteos == nil {
			o.Conteos = make(map[string]Conteo, len(u.Conteos))
		}
		o.Conteos[tipo] = c
	}
}
