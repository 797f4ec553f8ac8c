// Package sqlite implements storage.RecordStore on an embedded relational
// database file. A deployment picks it over the spreadsheet backend through
// configuration; both expose identical semantics.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Register sqlite driver

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

const connectPingTimeout = 5 * time.Second

// Adapter implements storage.RecordStore for an embedded SQLite file.
type Adapter struct {
	db            *sql.DB
	stmtInsert    *sql.Stmt
	stmtList      *sql.Stmt
	stmtGet       *sql.Stmt
	stmtUpdate    *sql.Stmt
	stmtDelete    *sql.Stmt
	stmtDeleteAll *sql.Stmt
	clock         func() time.Time
}

// NewAdapter opens (or creates) the database file at path.
//
// Schema must be initialized separately via migrations before the adapter
// will accept the connection.
//
// The adapter prepares its statements during initialization.
func NewAdapter(path string, maxOpenConns, maxIdleConns int) (*Adapter, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("[SQLite] Connection pool configured",
		"path", path,
		"max_open_conns", maxOpenConns,
		"max_idle_conns", maxIdleConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), connectPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := validateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema validation failed - did you run migrations?: %w", err)
	}

	a := &Adapter{db: db, clock: time.Now}
	prepared := []struct {
		dst   **sql.Stmt
		query string
		name  string
	}{
		{&a.stmtInsert, queryInsertOperativo, "insert"},
		{&a.stmtList, queryListOperativos, "list"},
		{&a.stmtGet, queryGetOperativo, "get"},
		{&a.stmtUpdate, queryUpdateOperativo, "update"},
		{&a.stmtDelete, queryDeleteOperativo, "delete"},
		{&a.stmtDeleteAll, queryDeleteAllOperativos, "deleteAll"},
	}
	for _, p := range prepared {
		stmt, err := db.Prepare(p.query)
		if err != nil {
			a.closeStmts()
			db.Close()
			return nil, fmt.Errorf("failed to prepare %s statement: %w", p.name, err)
		}
		*p.dst = stmt
	}

	slog.Info("[SQLite] Adapter initialized with prepared statements")
	return a, nil
}

// validateSchema checks that the operativos table exists.
func validateSchema(db *sql.DB) error {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = 'operativos'
		)
	`
	if err := db.QueryRow(query).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("operativos table does not exist")
	}
	return nil
}

// List returns every stored record.
func (a *Adapter) List(ctx context.Context) ([]*v1.Operativo, error) {
	rows, err := a.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query operativos: %w", err)
	}
	defer rows.Close()

	var ops []*v1.Operativo
	for rows.Next() {
		op, err := scanOperativoRow(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operativos: %w", err)
	}
	return ops, nil
}

// Get fetches one record by id.
func (a *Adapter) Get(ctx context.Context, id int64) (*v1.Operativo, error) {
	op, err := scanOperativoRow(a.stmtGet.QueryRowContext(ctx, id))
	if err != nil {
		if errIsNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return op, nil
}

// Create inserts a record and returns the store-assigned id. CreatedAt is
// stamped here; a caller-supplied value is ignored.
func (a *Adapter) Create(ctx context.Context, op *v1.Operativo) (int64, error) {
	conteosJSON, err := marshalConteos(op.Conteos)
	if err != nil {
		return 0, err
	}

	op.CreatedAt = a.clock().UTC()

	var id int64
	err = a.stmtInsert.QueryRowContext(ctx,
		op.Fecha,
		op.Lugar,
		op.HoraInicio,
		op.HoraFin,
		op.AreasInvolucradas,
		int(op.PersonalGuardiaUrbana),
		int(op.PersonalTransito),
		int(op.PersonalBromatologia),
		op.Personal,
		int(op.VehiculosControladosTotal),
		conteosJSON,
		float64(op.MaximaGraduacionGL),
		formatCreatedAt(op.CreatedAt),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert operativo: %w", err)
	}

	op.ID = id
	slog.Debug("[SQLite] Saved operativo", "id", id, "fecha", op.Fecha)
	return id, nil
}

// Update merges a partial update into the stored record inside one
// transaction, so concurrent updates cannot interleave reads and writes.
func (a *Adapter) Update(ctx context.Context, id int64, upd *v1.OperativoUpdate) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update transaction: %w", err)
	}
	defer tx.Rollback()

	op, err := scanOperativoRow(tx.StmtContext(ctx, a.stmtGet).QueryRowContext(ctx, id))
	if err != nil {
		if errIsNoRows(err) {
			return storage.ErrNotFound
		}
		return err
	}

	upd.Apply(op)

	conteosJSON, err := marshalConteos(op.Conteos)
	if err != nil {
		return err
	}

	res, err := tx.StmtContext(ctx, a.stmtUpdate).ExecContext(ctx,
		op.Fecha,
		op.Lugar,
		op.HoraInicio,
		op.HoraFin,
		op.AreasInvolucradas,
		int(op.PersonalGuardiaUrbana),
		int(op.PersonalTransito),
		int(op.PersonalBromatologia),
		op.Personal,
		int(op.VehiculosControladosTotal),
		conteosJSON,
		float64(op.MaximaGraduacionGL),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update operativo: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}

	slog.Debug("[SQLite] Updated operativo", "id", id)
	return nil
}

// Delete removes one record by id.
func (a *Adapter) Delete(ctx context.Context, id int64) error {
	res, err := a.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete operativo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteAll removes every record and reports how many were removed.
func (a *Adapter) DeleteAll(ctx context.Context) (int64, error) {
	res, err := a.stmtDeleteAll.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete operativos: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}
	slog.Info("[SQLite] Deleted all operativos", "count", n)
	return n, nil
}

// Backup snapshots the database into dst using VACUUM INTO, which produces a
// consistent copy without blocking writers.
func (a *Adapter) Backup(ctx context.Context, dst string) error {
	if _, err := a.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}
	slog.Info("[SQLite] Backup written", "dst", dst)
	return nil
}

// Ping reports database connectivity for health checks.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// DB returns the underlying *sql.DB so migrations can reuse the connection.
func (a *Adapter) DB() *sql.DB {
	return a.db
}

// Close closes the prepared statements and the database connection.
func (a *Adapter) Close() error {
	firstErr := a.closeStmts()
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close database: %w", err)
	}
	if firstErr != nil {
		return firstErr
	}
	slog.Info("[SQLite] Adapter closed gracefully")
	return nil
}

func (a *Adapter) closeStmts() error {
	var firstErr error
	for _, stmt := range []*sql.Stmt{
		a.stmtInsert, a.stmtList, a.stmtGet, a.stmtUpdate, a.stmtDelete, a.stmtDeleteAll,
	} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close statement: %w", err)
		}
	}
	return firstErr
}

// errIsNoRows unwraps through scanOperativoRow's wrapping; sql.Row defers
// ErrNoRows until Scan, so the wrapped form shows up here.
func errIsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
