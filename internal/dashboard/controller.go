// Package dashboard maintains the shared dashboard view: one filter state per
// deployment plus the derived summary, record list, and recent history. The
// filter survives across requests so every terminal in the office sees the
// same cut of the data.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

const storeTimeout = 10 * time.Second

// Vista is the full dashboard payload: the active filter, the aggregate over
// the filtered records, the filtered records newest first, and the trailing
// history window.
type Vista struct {
	Filtro     FiltroVista     `json:"filtro"`
	Resumen    *stats.Resumen  `json:"resumen"`
	Operativos []*v1.Operativo `json:"operativos"`
	Historial  []*v1.Operativo `json:"historial"`
}

// FiltroVista is the filter state rendered for clients, dates as plain
// calendar days.
type FiltroVista struct {
	Desde    string `json:"desde,omitempty"`
	Hasta    string `json:"hasta,omitempty"`
	Vehiculo string `json:"vehiculo"`
}

// Controller guards the shared filter state and produces dashboard views.
type Controller struct {
	store        storage.RecordStore
	cat          *catalog.Catalogo
	historyLimit int
	rangeDays    int
	clock        func() time.Time

	mu     sync.RWMutex
	filtro stats.Filtro
}

// NewController starts with the default filter: the trailing rangeDays
// calendar days up to today, all vehicle types.
func NewController(store storage.RecordStore, cat *catalog.Catalogo, historyLimit, rangeDays int) *Controller {
	if store == nil {
		panic("dashboard: store must not be nil")
	}
	if cat == nil {
		panic("dashboard: catalog must not be nil")
	}
	if historyLimit <= 0 {
		historyLimit = 10
	}
	if rangeDays <= 0 {
		rangeDays = 30
	}

	c := &Controller{
		store:        store,
		cat:          cat,
		historyLimit: historyLimit,
		rangeDays:    rangeDays,
		clock:        time.Now,
	}
	c.filtro = stats.RangoDias(rangeDays, c.clock())
	c.filtro.Vehiculo = catalog.VehicleFilterAll
	return c
}

// Filtro returns a copy of the active filter.
func (c *Controller) Filtro() stats.Filtro {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filtro
}

// SetFiltro replaces the shared filter wholesale after validating the
// vehicle selector against the catalog.
func (c *Controller) SetFiltro(f stats.Filtro) error {
	if !c.cat.ValidFilter(f.Vehiculo) {
		return fmt.Errorf("unknown vehicle type %q", f.Vehiculo)
	}
	if f.Vehiculo == "" {
		f.Vehiculo = catalog.VehicleFilterAll
	}
	if f.Desde != nil && f.Hasta != nil && f.Desde.After(*f.Hasta) {
		return fmt.Errorf("desde is after hasta")
	}

	c.mu.Lock()
	c.filtro = f
	c.mu.Unlock()
	return nil
}

// Reset restores the default trailing range and clears the vehicle selector.
func (c *Controller) Reset() {
	f := stats.RangoDias(c.rangeDays, c.clock())
	f.Vehiculo = catalog.VehicleFilterAll

	c.mu.Lock()
	c.filtro = f
	c.mu.Unlock()
}

// Snapshot loads the store and builds the dashboard view under the active
// filter.
func (c *Controller) Snapshot(ctx context.Context) (*Vista, error) {
	return c.SnapshotCon(ctx, c.Filtro())
}

// SnapshotCon builds a view for an arbitrary filter without touching the
// shared state; exports use it for one-off query-param cuts. The store call
// is bounded so a wedged backend cannot hang the dashboard indefinitely.
func (c *Controller) SnapshotCon(ctx context.Context, filtro stats.Filtro) (*Vista, error) {
	loadCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	records, err := c.store.List(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	filtered := stats.Filter(records, filtro)
	stats.SortFechaDesc(filtered)
	resumen := stats.Compute(filtered, stats.Filtro{Vehiculo: filtro.Vehiculo}, c.cat)

	// History ignores the filter: always the most recent records on file.
	historial := make([]*v1.Operativo, len(records))
	copy(historial, records)
	stats.SortFechaDesc(historial)
	if len(historial) > c.historyLimit {
		historial = historial[:c.historyLimit]
	}

	if filtered == nil {
		filtered = []*v1.Operativo{}
	}
	return &Vista{
		Filtro:     c.renderFiltro(filtro),
		Resumen:    resumen,
		Operativos: filtered,
		Historial:  historial,
	}, nil
}

func (c *Controller) renderFiltro(f stats.Filtro) FiltroVista {
	fv := FiltroVista{Vehiculo: f.Vehiculo}
	if f.Desde != nil {
		fv.Desde = f.Desde.Format("2006-01-02")
	}
	if f.Hasta != nil {
		fv.Hasta = f.Hasta.Format("2006-01-02")
	}
	return fv
}
