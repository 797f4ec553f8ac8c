package report

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
	httperr "github.com/fraymodernizacion/control-transito/internal/core/errors"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

// RegisterRoutes registers the export and per-record report routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/export/csv", s.CSVHandler)
	r.GET("/v1/export/pdf", s.PDFHandler)
	r.GET("/v1/operativos/:id/reporte", s.TextoHandler)
}

// CSVHandler streams a CSV download: the dashboard's current cut, or the
// one-off cut described by desde/hasta/vehiculo query parameters.
func (s *Service) CSVHandler(c *gin.Context) {
	filtro, ok := s.parseFiltroQuery(c)
	if !ok {
		return
	}

	data, filename, err := s.CSV(c.Request.Context(), filtro)
	if err != nil {
		writeExportError(c, err)
		return
	}

	slog.Info("CSV export generated", "filename", filename, "bytes", len(data))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// PDFHandler streams a PDF download under the same filter rules as the CSV.
func (s *Service) PDFHandler(c *gin.Context) {
	filtro, ok := s.parseFiltroQuery(c)
	if !ok {
		return
	}

	data, filename, err := s.PDF(c.Request.Context(), filtro)
	if err != nil {
		writeExportError(c, err)
		return
	}

	slog.Info("PDF export generated", "filename", filename, "bytes", len(data))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// TextoHandler returns the shareable plain-text summary for one record.
func (s *Service) TextoHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "invalid operativo id",
			Details:   map[string]interface{}{"id": c.Param("id")},
		})
		return
	}

	op, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "Operativo no encontrado",
			})
			return
		}
		writeExportError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(s.Texto(op)))
}

// parseFiltroQuery reads the optional desde/hasta/vehiculo parameters. All
// absent means "use the dashboard filter" (nil). Reports ok=false after
// writing the error response.
func (s *Service) parseFiltroQuery(c *gin.Context) (*stats.Filtro, bool) {
	desde := c.Query("desde")
	hasta := c.Query("hasta")
	vehiculo := c.Query("vehiculo")
	if desde == "" && hasta == "" && vehiculo == "" {
		return nil, true
	}

	var f stats.Filtro
	if desde != "" {
		t := stats.ParseFecha(desde)
		if t.IsZero() {
			writeInvalidParam(c, "desde", desde)
			return nil, false
		}
		f.Desde = &t
	}
	if hasta != "" {
		t := stats.ParseFecha(hasta)
		if t.IsZero() {
			writeInvalidParam(c, "hasta", hasta)
			return nil, false
		}
		f.Hasta = &t
	}
	if !s.cat.ValidFilter(vehiculo) {
		writeInvalidParam(c, "vehiculo", vehiculo)
		return nil, false
	}
	f.Vehiculo = vehiculo
	if f.Vehiculo == "" {
		f.Vehiculo = catalog.VehicleFilterAll
	}
	return &f, true
}

func writeInvalidParam(c *gin.Context, name, raw string) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidQueryError,
		Message:   "invalid " + name + " parameter",
		Details:   map[string]interface{}{name: raw},
	})
}

func writeExportError(c *gin.Context, err error) {
	slog.Error("Export failed", "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpExportError,
		Message:   "Failed to generate export",
	})
}
