package storage

import (
	"context"
	"errors"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("operativo not found")

// RecordStore is the persistence contract shared by the relational-file and
// spreadsheet backends. Both assign ids as max(id)+1 semantics on create and
// keep CreatedAt immutable.
type RecordStore interface {
	// List returns every stored record, unordered. Callers sort.
	List(ctx context.Context) ([]*v1.Operativo, error)

	// Get fetches one record by id; ErrNotFound when absent.
	Get(ctx context.Context, id int64) (*v1.Operativo, error)

	// Create inserts a record and returns the assigned id.
	Create(ctx context.Context, op *v1.Operativo) (int64, error)

	// Update applies a partial update to an existing record; ErrNotFound
	// when absent. Omitted fields keep their stored values.
	Update(ctx context.Context, id int64, upd *v1.OperativoUpdate) error

	// Delete removes one record by id; ErrNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every record and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	Close() error
}

// Backupper is an optional capability: stores that can snapshot themselves
// to a file implement it, and the backup scheduler discovers it by type
// assertion.
type Backupper interface {
	Backup(ctx context.Context, dst string) error
}
