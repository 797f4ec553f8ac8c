package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
	"github.com/fraymodernizacion/control-transito/internal/dashboard"
	storagemocks "github.com/fraymodernizacion/control-transito/internal/mocks/storage"
)

func newTestService(t *testing.T) (*Service, *storagemocks.RecordStore) {
	t.Helper()

	mockStore := storagemocks.NewRecordStore(t)
	cat := catalog.Default()
	dash := dashboard.NewController(mockStore, cat, 10, 30)
	// Unbounded cut so fixtures with fixed dates always show up.
	require.NoError(t, dash.SetFiltro(stats.Filtro{Vehiculo: catalog.VehicleFilterAll}))

	svc := NewService(mockStore, cat, dash, Config{
		Organizacion: "Municipalidad de Fray Bentos",
		Dependencia:  "Dirección de Tránsito",
		MaxDetalle:   8,
	})
	svc.clock = func() time.Time {
		return time.Date(2026, 3, 31, 10, 0, 0, 0, time.Local)
	}
	return svc, mockStore
}

func sampleOperativo() *v1.Operativo {
	return &v1.Operativo{
		ID:                        1,
		Fecha:                     "2026-03-15",
		Lugar:                     "Av. 18 de Julio y Rincón",
		HoraInicio:                "22:00",
		HoraFin:                   "03:00",
		AreasInvolucradas:         "Guardia Urbana, Tránsito",
		PersonalGuardiaUrbana:     4,
		PersonalTransito:          2,
		VehiculosControladosTotal: 40,
		Conteos: map[string]v1.Conteo{
			"auto": {ActasSimples: 3, RetencionDoc: 1, AlcoholemiaPositiva: 5},
			"moto": {ActasRuido: 2},
		},
		MaximaGraduacionGL: 1.15,
	}
}

func TestTexto_FullRecord(t *testing.T) {
	svc, _ := newTestService(t)

	out := svc.Texto(sampleOperativo())

	require.Contains(t, out, "REPORTE DE OPERATIVO DE TRÁNSITO")
	require.Contains(t, out, "Municipalidad de Fray Bentos - Dirección de Tránsito")
	require.Contains(t, out, "Fecha: 2026-03-15")
	require.Contains(t, out, "Lugar: Av. 18 de Julio y Rincón")
	require.Contains(t, out, "Horario: 22:00 a 03:00")
	require.Contains(t, out, "Personal afectado: 6 (Guardia Urbana: 4, Tránsito: 2)")
	require.Contains(t, out, "Vehículos controlados: 40")
	require.Contains(t, out, "AUTOS:")
	require.Contains(t, out, "  - Actas simples: 3")
	require.Contains(t, out, "  - Alcoholemias positivas: 5")
	require.Contains(t, out, "MOTOS:")
	require.Contains(t, out, "  - Actas por ruidos: 2")
	require.Contains(t, out, "Máxima graduación: 1.15 g/L")
	require.Contains(t, out, "Faltas: 11")
}

func TestTexto_OmitsEmptySections(t *testing.T) {
	svc, _ := newTestService(t)

	op := &v1.Operativo{Fecha: "2026-03-15", VehiculosControladosTotal: 10}
	out := svc.Texto(op)

	require.NotContains(t, out, "Lugar:")
	require.NotContains(t, out, "Horario:")
	require.NotContains(t, out, "Máxima graduación")
	require.NotContains(t, out, "AUTOS:")
	require.Contains(t, out, "Faltas: 0")
	// Personnel is the one section that always renders.
	require.Contains(t, out, "Personal: No especificado")
}

func TestTexto_LegacyPersonalFallback(t *testing.T) {
	svc, _ := newTestService(t)

	op := &v1.Operativo{Fecha: "2026-03-15", Personal: "6 agentes"}
	out := svc.Texto(op)
	require.Contains(t, out, "Personal: 6 agentes")
}

func TestCSV_ContentAndFilename(t *testing.T) {
	svc, mockStore := newTestService(t)

	mockStore.EXPECT().List(mock.Anything).Return([]*v1.Operativo{sampleOperativo()}, nil).Once()

	data, filename, err := svc.CSV(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "operativos_2026-03-31.csv", filename)

	text := string(data)
	require.True(t, strings.HasPrefix(text, "\xEF\xBB\xBF"), "missing UTF-8 BOM")
	require.Contains(t, text, "id,fecha,lugar")
	require.Contains(t, text, "actas_simples_auto")
	require.Contains(t, text, "Av. 18 de Julio y Rincón")
	require.Contains(t, text, "total_operativos,1")
	require.Contains(t, text, "total_vehiculos,40")
	require.Contains(t, text, "total_faltas,11")
	// 5/40*100 = 12.5, exports carry two places.
	require.Contains(t, text, "tasa_positividad,12.5")
}

func TestPDF_ProducesDocument(t *testing.T) {
	svc, mockStore := newTestService(t)

	mockStore.EXPECT().List(mock.Anything).Return([]*v1.Operativo{sampleOperativo()}, nil).Once()

	data, filename, err := svc.PDF(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "informe_transito_2026-03-31.pdf", filename)
	require.True(t, strings.HasPrefix(string(data), "%PDF"), "not a pdf document")
	require.Greater(t, len(data), 1000)
}

func TestPDF_ManyRecordsStayBounded(t *testing.T) {
	svc, mockStore := newTestService(t)

	var records []*v1.Operativo
	for i := 0; i < 40; i++ {
		op := sampleOperativo()
		op.ID = int64(i + 1)
		records = append(records, op)
	}
	mockStore.EXPECT().List(mock.Anything).Return(records, nil).Once()

	data, _, err := svc.PDF(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestCSVHandler_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mockStore := newTestService(t)

	mockStore.EXPECT().List(mock.Anything).Return([]*v1.Operativo{sampleOperativo()}, nil).Once()

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/export/csv", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header().Get("Content-Type"))
	require.Contains(t, resp.Header().Get("Content-Disposition"), "operativos_2026-03-31.csv")
}

func TestCSVHandler_QueryParamFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mockStore := newTestService(t)

	otherDay := sampleOperativo()
	otherDay.ID = 2
	otherDay.Fecha = "2026-03-20"
	otherDay.Lugar = "Ruta 2 km 305"
	mockStore.EXPECT().List(mock.Anything).Return([]*v1.Operativo{sampleOperativo(), otherDay}, nil).Once()

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/export/csv?desde=2026-03-15&hasta=2026-03-15", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Av. 18 de Julio y Rincón")
	require.NotContains(t, resp.Body.String(), "Ruta 2 km 305")
}

func TestCSVHandler_UnknownVehicleRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/export/csv?vehiculo=bicicleta", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "invalid_query")
}

func TestTextoHandler_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mockStore := newTestService(t)

	mockStore.EXPECT().Get(mock.Anything, int64(99)).Return(nil, storage.ErrNotFound).Once()

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/operativos/99/reporte", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTextoHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, mockStore := newTestService(t)

	mockStore.EXPECT().Get(mock.Anything, int64(1)).Return(sampleOperativo(), nil).Once()

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/operativos/1/reporte", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "text/plain")
	require.Contains(t, resp.Body.String(), "REPORTE DE OPERATIVO DE TRÁNSITO")
}
