package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/fraymodernizacion/control-transito/internal/core/errors"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
)

// filtroRequest is the PUT body for the shared filter. Dates accept the same
// formats stored records do; empty strings clear a bound.
type filtroRequest struct {
	Desde    string `json:"desde"`
	Hasta    string `json:"hasta"`
	Vehiculo string `json:"vehiculo"`
}

// RegisterRoutes registers the dashboard routes.
func (c *Controller) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/dashboard", c.ViewHandler)
	r.PUT("/v1/dashboard/filtro", c.SetFiltroHandler)
	r.DELETE("/v1/dashboard/filtro", c.ResetHandler)
	r.POST("/v1/dashboard/refresh", c.RefreshHandler)
}

// ViewHandler returns the dashboard under the active filter.
func (c *Controller) ViewHandler(ctx *gin.Context) {
	c.respondWithSnapshot(ctx)
}

// RefreshHandler rebuilds the view from the store without touching the
// filter.
func (c *Controller) RefreshHandler(ctx *gin.Context) {
	c.respondWithSnapshot(ctx)
}

// ResetHandler restores the default trailing range, re-anchored to today,
// and clears the vehicle selector.
func (c *Controller) ResetHandler(ctx *gin.Context) {
	c.Reset()
	slog.Info("Dashboard filter reset")
	c.respondWithSnapshot(ctx)
}

// SetFiltroHandler replaces the shared filter and returns the refreshed view.
func (c *Controller) SetFiltroHandler(ctx *gin.Context) {
	var req filtroRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid filter body", "error", err)
		ctx.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
		})
		return
	}

	var f stats.Filtro
	if req.Desde != "" {
		t := stats.ParseFecha(req.Desde)
		if t.IsZero() {
			writeInvalidDate(ctx, "desde", req.Desde)
			return
		}
		f.Desde = &t
	}
	if req.Hasta != "" {
		t := stats.ParseFecha(req.Hasta)
		if t.IsZero() {
			writeInvalidDate(ctx, "hasta", req.Hasta)
			return
		}
		f.Hasta = &t
	}
	f.Vehiculo = req.Vehiculo

	if err := c.SetFiltro(f); err != nil {
		ctx.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   err.Error(),
		})
		return
	}

	slog.Info("Dashboard filter updated",
		"desde", req.Desde, "hasta", req.Hasta, "vehiculo", req.Vehiculo)
	c.respondWithSnapshot(ctx)
}

func (c *Controller) respondWithSnapshot(ctx *gin.Context) {
	vista, err := c.Snapshot(ctx.Request.Context())
	if err != nil {
		slog.Error("Failed to build dashboard view", "error", err)
		ctx.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to build dashboard view",
		})
		return
	}
	ctx.JSON(http.StatusOK, vista)
}

func writeInvalidDate(ctx *gin.Context, name, raw string) {
	ctx.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidQueryError,
		Message:   "invalid " + name + " date",
		Details:   map[string]interface{}{name: raw},
	})
}
