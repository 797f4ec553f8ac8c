// Package report renders the stored records for humans: a shareable plain
// text summary per record, a CSV dump of the dashboard's current cut, and a
// printable PDF report.
package report

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
	"github.com/fraymodernizacion/control-transito/internal/dashboard"
)

// Config carries the deployment identity printed on report headers and the
// detail bound for the PDF.
type Config struct {
	Organizacion string
	Dependencia  string
	MaxDetalle   int
}

type Service struct {
	store storage.RecordStore
	cat   *catalog.Catalogo
	dash  *dashboard.Controller
	cfg   Config
	clock func() time.Time
}

func NewService(store storage.RecordStore, cat *catalog.Catalogo, dash *dashboard.Controller, cfg Config) *Service {
	if store == nil {
		panic("report: store must not be nil")
	}
	if cat == nil {
		panic("report: catalog must not be nil")
	}
	if dash == nil {
		panic("report: dashboard controller must not be nil")
	}
	if cfg.MaxDetalle <= 0 {
		cfg.MaxDetalle = 8
	}
	return &Service{
		store: store,
		cat:   cat,
		dash:  dash,
		cfg:   cfg,
		clock: time.Now,
	}
}

// snapshot loads the export data. Without an override it shows the
// dashboard's current cut, so downloads match what the office is looking
// at; query-param filters produce a one-off cut instead.
func (s *Service) snapshot(ctx context.Context, override *stats.Filtro) (*dashboard.Vista, error) {
	var (
		vista *dashboard.Vista
		err   error
	)
	if override != nil {
		vista, err = s.dash.SnapshotCon(ctx, *override)
	} else {
		vista, err = s.dash.Snapshot(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load export data: %w", err)
	}
	return vista, nil
}

// exportTipos is the column fan-out for an export: catalog types first, then
// any extra types found in the exported records.
func (s *Service) exportTipos(ops []*v1.Operativo) []string {
	tipos := s.cat.Claves()
	seen := make(map[string]bool, len(tipos))
	for _, t := range tipos {
		seen[t] = true
	}
	for _, op := range ops {
		for _, t := range op.TiposPresentes() {
			if !seen[t] {
				seen[t] = true
				tipos = append(tipos, t)
			}
		}
	}
	return tipos
}
