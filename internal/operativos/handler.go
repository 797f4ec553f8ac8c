package operativos

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	httperr "github.com/fraymodernizacion/control-transito/internal/core/errors"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

// User-visible messages kept verbatim from the legacy store responses.
const (
	msgGuardado     = "Operativo guardado exitosamente"
	msgEliminado    = "Operativo eliminado"
	msgTodosBorrado = "Todos los operativos eliminados"
	msgNoEncontrado = "Operativo no encontrado"

	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgStoreFailed    = "Record store operation failed"
)

// apiError carries the structured HTTP error shape from a helper back to the
// handler. Helpers return this instead of writing to gin.Context directly.
type apiError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *apiError) Error() string {
	return e.message
}

// ListHandler returns every record, newest first.
func (s *Service) ListHandler(c *gin.Context) {
	ops, err := s.store.List(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	stats.SortFechaDesc(ops)
	if ops == nil {
		ops = []*v1.Operativo{}
	}
	c.JSON(http.StatusOK, ops)
}

// GetHandler returns one record by id.
func (s *Service) GetHandler(c *gin.Context) {
	id, apiErr := parseID(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	op, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// CreateHandler validates and persists a new record.
func (s *Service) CreateHandler(c *gin.Context) {
	op, apiErr := s.parseOperativo(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	if err := op.Validate(); err != nil {
		slog.Warn("Operativo validation failed", "error", err)
		writeError(c, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		})
		return
	}

	id, err := s.store.Create(c.Request.Context(), op)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	slog.Info("Operativo created", "id", id, "fecha", op.Fecha, "lugar", op.Lugar)
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": msgGuardado})
}

// UpdateHandler applies a partial update to an existing record.
func (s *Service) UpdateHandler(c *gin.Context) {
	id, apiErr := parseID(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	upd, apiErr := s.parseUpdate(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	if upd.IsEmpty() {
		writeError(c, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    "update carries no fields",
		})
		return
	}

	if err := s.store.Update(c.Request.Context(), id, upd); err != nil {
		writeStoreError(c, err)
		return
	}

	slog.Info("Operativo updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"id": id, "message": msgGuardado})
}

// DeleteHandler removes one record.
func (s *Service) DeleteHandler(c *gin.Context) {
	id, apiErr := parseID(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}

	slog.Info("Operativo deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": msgEliminado})
}

// DeleteAllHandler wipes the store.
func (s *Service) DeleteAllHandler(c *gin.Context) {
	n, err := s.store.DeleteAll(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}

	slog.Info("All operativos deleted", "count", n)
	c.JSON(http.StatusOK, gin.H{"message": msgTodosBorrado, "count": n})
}

// StatsHandler aggregates the stored records. Optional query parameters
// desde, hasta (calendar days) and vehiculo narrow the summary the same way
// the dashboard filter does.
func (s *Service) StatsHandler(c *gin.Context) {
	filtro, apiErr := s.parseFiltroQuery(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	ops, err := s.store.List(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats.Compute(ops, filtro, s.cat))
}

// parseOperativo reads and binds the request body into a record.
func (s *Service) parseOperativo(c *gin.Context) (*v1.Operativo, *apiError) {
	bodyBytes, apiErr := s.readBody(c)
	if apiErr != nil {
		return nil, apiErr
	}

	var op v1.Operativo
	if err := c.ShouldBindJSON(&op); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return &op, nil
}

func (s *Service) parseUpdate(c *gin.Context) (*v1.OperativoUpdate, *apiError) {
	bodyBytes, apiErr := s.readBody(c)
	if apiErr != nil {
		return nil, apiErr
	}

	var upd v1.OperativoUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return &upd, nil
}

// readBody enforces the maximum body size and rewinds the body for binding.
func (s *Service) readBody(c *gin.Context) ([]byte, *apiError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, &apiError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &apiError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return bodyBytes, nil
}

// parseFiltroQuery builds a filter from desde/hasta/vehiculo query params.
func (s *Service) parseFiltroQuery(c *gin.Context) (stats.Filtro, *apiError) {
	var f stats.Filtro

	parseDay := func(name string) (*time.Time, *apiError) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		t := stats.ParseFecha(raw)
		if t.IsZero() {
			return nil, &apiError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidQueryError,
				message:    "invalid " + name + " date",
				details:    map[string]interface{}{name: raw},
			}
		}
		return &t, nil
	}

	desde, apiErr := parseDay("desde")
	if apiErr != nil {
		return f, apiErr
	}
	hasta, apiErr := parseDay("hasta")
	if apiErr != nil {
		return f, apiErr
	}
	f.Desde, f.Hasta = desde, hasta

	f.Vehiculo = c.Query("vehiculo")
	if !s.cat.ValidFilter(f.Vehiculo) {
		return f, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "unknown vehicle type",
			details:    map[string]interface{}{"vehiculo": f.Vehiculo},
		}
	}
	return f, nil
}

func parseID(c *gin.Context) (int64, *apiError) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "invalid operativo id",
			details:    map[string]interface{}{"id": c.Param("id")},
		}
	}
	return id, nil
}

// writeStoreError maps storage failures onto the HTTP error shape.
func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(c, &apiError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpNotFoundError,
			message:    msgNoEncontrado,
		})
		return
	}

	slog.Error("Record store operation failed", "error", err)
	writeError(c, &apiError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgStoreFailed,
	})
}

// writeError serializes an apiError as the JSON HTTP response.
func writeError(c *gin.Context, err *apiError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
