package v1

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCantidadCoercion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Cantidad
	}{
		{"plain number", `7`, 7},
		{"float truncates", `3.9`, 3},
		{"numeric string", `"12"`, 12},
		{"padded numeric string", `" 4 "`, 4},
		{"null", `null`, 0},
		{"negative", `-5`, 0},
		{"garbage string", `"muchos"`, 0},
		{"boolean", `true`, 0},
		{"empty string", `""`, 0},
		{"huge number caps instead of overflowing", `1e300`, math.MaxInt32},
		{"huge quoted number caps too", `"9999999999999999999"`, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cantidad
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			require.Equal(t, tt.want, c)
		})
	}
}

func TestGraduacionCoercion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Graduacion
	}{
		{"reading", `0.85`, 0.85},
		{"quoted reading", `"1.2"`, 1.2},
		{"null", `null`, 0},
		{"negative", `-0.3`, 0},
		{"garbage", `"n/a"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Graduacion
			require.NoError(t, json.Unmarshal([]byte(tt.json), &g))
			require.Equal(t, tt.want, g)
		})
	}
}

func TestCantidadDe(t *testing.T) {
	require.Equal(t, Cantidad(3), CantidadDe("3"))
	require.Equal(t, Cantidad(3), CantidadDe(3.7))
	require.Equal(t, Cantidad(5), CantidadDe(int64(5)))
	require.Equal(t, Cantidad(0), CantidadDe(nil))
	require.Equal(t, Cantidad(0), CantidadDe("x"))
	require.Equal(t, Cantidad(0), CantidadDe(-2))
	require.Equal(t, Cantidad(math.MaxInt32), CantidadDe(1e300))
}

func TestHugeFlatCounterStaysNonNegative(t *testing.T) {
	var op Operativo
	require.NoError(t, json.Unmarshal([]byte(`{"fecha":"2026-03-14","actas_simples_auto":1e300}`), &op))

	require.Equal(t, Cantidad(math.MaxInt32), op.Conteos["auto"].ActasSimples)
	require.GreaterOrEqual(t, op.TotalFaltas(), 0)
}

func TestGraduacionDe(t *testing.T) {
	require.Equal(t, Graduacion(0.8), GraduacionDe(" 0.8 "))
	require.Equal(t, Graduacion(1.1), GraduacionDe(1.1))
	require.Equal(t, Graduacion(0), GraduacionDe(""))
	require.Equal(t, Graduacion(0), GraduacionDe(-1.0))
}

func TestOperativoUnmarshalFlatKeys(t *testing.T) {
	body := `{
		"fecha": "2026-03-14",
		"lugar": "Av. Sarmiento",
		"vehiculos_controlados_total": 40,
		"actas_simples_auto": 3,
		"alcoholemia_positiva_auto": "2",
		"actas_ruido_moto": 5
	}`

	var op Operativo
	require.NoError(t, json.Unmarshal([]byte(body), &op))

	require.Equal(t, "2026-03-14", op.Fecha)
	require.Equal(t, Cantidad(40), op.VehiculosControladosTotal)
	require.Equal(t, Cantidad(3), op.Conteos["auto"].ActasSimples)
	require.Equal(t, Cantidad(2), op.Conteos["auto"].AlcoholemiaPositiva)
	require.Equal(t, Cantidad(5), op.Conteos["moto"].ActasRuido)
	require.Equal(t, Cantidad(0), op.Conteos["moto"].ActasSimples)
}

func TestOperativoUnmarshalNestedWinsOverFlat(t *testing.T) {
	body := `{
		"fecha": "2026-03-14",
		"conteos": {"auto": {"actas_simples": 9}},
		"actas_simples_auto": 1,
		"retencion_doc_camion": 4
	}`

	var op Operativo
	require.NoError(t, json.Unmarshal([]byte(body), &op))

	// Nested counters take precedence for their vehicle type; flat keys still
	// populate types the nested object does not mention.
	require.Equal(t, Cantidad(9), op.Conteos["auto"].ActasSimples)
	require.Equal(t, Cantidad(0), op.Conteos["auto"].RetencionDoc)
	require.Equal(t, Cantidad(4), op.Conteos["camion"].RetencionDoc)
}

func TestOperativoMarshalEmitsBothShapes(t *testing.T) {
	op := Operativo{
		ID:    3,
		Fecha: "2026-03-14",
		Conteos: map[string]Conteo{
			"auto": {ActasSimples: 2, AlcoholemiaPositiva: 1},
		},
	}

	data, err := json.Marshal(op)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	require.Contains(t, out, "conteos")
	require.JSONEq(t, `2`, string(out["actas_simples_auto"]))
	require.JSONEq(t, `1`, string(out["alcoholemia_positiva_auto"]))
	require.JSONEq(t, `0`, string(out["actas_ruido_auto"]))

	var back Operativo
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, op.Conteos, back.Conteos)
	require.Equal(t, op.Fecha, back.Fecha)
}

func TestOperativoDerivedTotals(t *testing.T) {
	op := Operativo{
		PersonalGuardiaUrbana: 2,
		PersonalTransito:      3,
		PersonalBromatologia:  1,
		AreasInvolucradas:     "Guardia Urbana, Tránsito, ",
		Conteos: map[string]Conteo{
			"auto": {ActasSimples: 3, RetencionDoc: 1, AlcoholemiaPositiva: 2},
			"moto": {ActasRuido: 4},
		},
	}

	require.Equal(t, 6, op.PersonalTotal())
	require.Equal(t, 10, op.TotalFaltas())
	require.Equal(t, 2, op.TotalAlcoholemia())
	require.Equal(t, []string{"Guardia Urbana", "Tránsito"}, op.Areas())
	require.Equal(t, []string{"auto", "moto"}, op.TiposPresentes())
}

func TestOperativoValidate(t *testing.T) {
	op := Operativo{Fecha: "  "}
	require.Error(t, op.Validate())

	op.Fecha = "14/3/2026"
	require.NoError(t, op.Validate())
}

func TestOperativoUpdateFoldsFlatKeys(t *testing.T) {
	body := `{"lugar": "Ruta 11", "alcoholemia_positiva_auto": 2}`

	var upd OperativoUpdate
	require.NoError(t, json.Unmarshal([]byte(body), &upd))

	require.False(t, upd.IsEmpty())
	require.NotNil(t, upd.Lugar)
	require.Equal(t, "Ruta 11", *upd.Lugar)
	require.Equal(t, Cantidad(2), upd.Conteos["auto"].AlcoholemiaPositiva)
}

func TestOperativoUpdateIsEmpty(t *testing.T) {
	var upd OperativoUpdate
	require.NoError(t, json.Unmarshal([]byte(`{}`), &upd))
	require.True(t, upd.IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`{"id": 9, "created_at": "2026-01-01T00:00:00Z"}`), &upd))
	require.True(t, upd.IsEmpty(), "immutable fields do not make an update")
}

func TestOperativoUpdateApply(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	op := Operativo{
		ID:                        7,
		Fecha:                     "2026-03-01",
		Lugar:                     "Plaza San Martín",
		VehiculosControladosTotal: 30,
		Conteos: map[string]Conteo{
			"auto": {ActasSimples: 1},
			"moto": {ActasRuido: 2},
		},
		CreatedAt: created,
	}

	lugar := "Av. Santa Fe"
	upd := OperativoUpdate{
		Lugar:   &lugar,
		Conteos: map[string]Conteo{"auto": {AlcoholemiaPositiva: 3}},
	}
	upd.Apply(&op)

	require.Equal(t, int64(7), op.ID)
	require.Equal(t, created, op.CreatedAt)
	require.Equal(t, "Av. Santa Fe", op.Lugar)
	require.Equal(t, "2026-03-01", op.Fecha)
	require.Equal(t, Cantidad(30), op.VehiculosControladosTotal)

	// A supplied vehicle type replaces its whole counter set.
	require.Equal(t, Conteo{AlcoholemiaPositiva: 3}, op.Conteos["auto"])
	require.Equal(t, Cantidad(2), op.Conteos["moto"].ActasRuido)
}

func TestFlatHeaders(t *testing.T) {
	headers := FlatHeaders([]string{"auto", "moto"})

	require.Equal(t, "id", headers[0])
	require.Equal(t, "fecha", headers[1])
	require.Contains(t, headers, "actas_simples_auto")
	require.Contains(t, headers, "actas_ruido_moto")
	require.Equal(t, "created_at", headers[len(headers)-1])
	require.Equal(t, "maxima_graduacion_gl", headers[len(headers)-2])
	// 11 scalar columns + 4 counter kinds * 2 types + 2 trailing columns.
	require.Len(t, headers, 21)
}

func TestFlatRoundTrip(t *testing.T) {
	op := &Operativo{
		ID:                        12,
		Fecha:                     "2026-03-14",
		Lugar:                     "Av. Sarmiento y Bv. 25 de Mayo",
		HoraInicio:                "22:00",
		HoraFin:                   "02:30",
		AreasInvolucradas:         "Guardia Urbana, Tránsito",
		PersonalGuardiaUrbana:     4,
		PersonalTransito:          2,
		VehiculosControladosTotal: 55,
		Conteos: map[string]Conteo{
			"auto": {ActasSimples: 3, AlcoholemiaPositiva: 2},
			"moto": {ActasRuido: 1},
		},
		MaximaGraduacionGL: 1.15,
		CreatedAt:          time.Date(2026, 3, 15, 2, 40, 0, 0, time.UTC),
	}

	headers := FlatHeaders([]string{"auto", "moto"})
	fields := make(map[string]string, len(headers))
	for _, h := range headers {
		fields[h] = op.FlatValue(h)
	}

	back := FromFlat(fields)
	require.Equal(t, op.ID, back.ID)
	require.Equal(t, op.Fecha, back.Fecha)
	require.Equal(t, op.Lugar, back.Lugar)
	require.Equal(t, op.PersonalGuardiaUrbana, back.PersonalGuardiaUrbana)
	require.Equal(t, op.VehiculosControladosTotal, back.VehiculosControladosTotal)
	require.Equal(t, op.MaximaGraduacionGL, back.MaximaGraduacionGL)
	require.Equal(t, op.Conteos["auto"], back.Conteos["auto"])
	require.Equal(t, op.Conteos["moto"], back.Conteos["moto"])
	require.True(t, op.CreatedAt.Equal(back.CreatedAt))
}

func TestFromFlatCoercesJunkCells(t *testing.T) {
	back := FromFlat(map[string]string{
		"id":                   "abc",
		"fecha":                "45366",
		"personal_transito":    "dos",
		"actas_simples_auto":   "3.9",
		"maxima_graduacion_gl": "-1",
	})

	require.Equal(t, int64(0), back.ID)
	require.Equal(t, "45366", back.Fecha)
	require.Equal(t, Cantidad(0), back.PersonalTransito)
	require.Equal(t, Cantidad(3), back.Conteos["auto"].ActasSimples)
	require.Equal(t, Graduacion(0), back.MaximaGraduacionGL)
}

func TestFlatValueUnknownColumn(t *testing.T) {
	op := &Operativo{Fecha: "2026-03-14"}
	require.Equal(t, "", op.FlatValue("columna_que_no_existe"))
	// Counter columns for types the record never saw render as zero.
	require.Equal(t, "0", op.FlatValue("actas_simples_camion"))
}

func TestConteoHelpers(t *testing.T) {
	c := Conteo{ActasSimples: 1, ActasRuido: 2}
	require.Equal(t, 3, c.Total())
	require.False(t, c.IsZero())
	require.True(t, Conteo{}.IsZero())
}
