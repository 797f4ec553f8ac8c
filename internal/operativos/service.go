// Package operativos exposes the CRUD and summary API over the record store.
package operativos

import (
	"github.com/gin-gonic/gin"

	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

type Service struct {
	store            storage.RecordStore
	cat              *catalog.Catalogo
	maxBodySizeBytes int
}

func NewService(store storage.RecordStore, cat *catalog.Catalogo, maxBodySizeMB int) *Service {
	if store == nil {
		panic("operativos: store must not be nil")
	}
	if cat == nil {
		panic("operativos: catalog must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		cat:              cat,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the record CRUD and summary routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/operativos", s.ListHandler)
	r.POST("/v1/operativos", s.CreateHandler)
	r.DELETE("/v1/operativos", s.DeleteAllHandler)

	// Static beats the :id wildcard, so /stats stays reachable.
	r.GET("/v1/operativos/stats", s.StatsHandler)

	r.GET("/v1/operativos/:id", s.GetHandler)
	r.PUT("/v1/operativos/:id", s.UpdateHandler)
	r.DELETE("/v1/operativos/:id", s.DeleteHandler)
}
