// Package planilla implements storage.RecordStore on a spreadsheet-style CSV
// file: a header row naming the columns, one row per record, per-vehicle
// counters fanned out into flat columns. It is the drop-in alternative to the
// embedded relational backend for deployments that want the data humanly
// editable.
package planilla

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/catalog"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

// Store implements storage.RecordStore over one CSV sheet file. Every
// operation re-reads the sheet so external edits between requests are picked
// up, matching how the original spreadsheet deployment behaved.
type Store struct {
	path  string
	cat   *catalog.Catalogo
	mu    sync.Mutex
	clock func() time.Time
}

// NewStore opens or creates the sheet at path. A new file gets the header
// row for the catalog's vehicle types.
func NewStore(path string, cat *catalog.Catalogo) (*Store, error) {
	s := &Store{path: path, cat: cat, clock: time.Now}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sheet directory: %w", err)
		}
		if err := s.write(nil); err != nil {
			return nil, fmt.Errorf("failed to initialize sheet: %w", err)
		}
		slog.Info("[Planilla] Created new sheet", "path", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat sheet: %w", err)
	}

	// Fail fast on an unreadable or malformed existing file.
	if _, err := s.read(); err != nil {
		return nil, err
	}

	slog.Info("[Planilla] Store initialized", "path", path)
	return s, nil
}

// read loads every record from the sheet. The header row drives column
// meaning, so sheets written with an older or wider catalog still parse.
func (s *Store) read() ([]*v1.Operativo, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet header: %w", err)
	}

	var ops []*v1.Operativo
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet row: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		ops = append(ops, v1.FromFlat(fields))
	}
	return ops, nil
}

// write rewrites the whole sheet atomically: temp file in the same directory,
// then rename over the original. The column set is the union of the catalog
// and any extra vehicle types present in the records, so no counter is ever
// silently dropped.
func (s *Store) write(ops []*v1.Operativo) error {
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
	headers := v1.FlatHeaders(tipos)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".planilla-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp sheet: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(headers); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write sheet header: %w", err)
	}
	row := make([]string, len(headers))
	for _, op := range ops {
		for i, col := range headers {
			row[i] = op.FlatValue(col)
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write sheet row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp sheet: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace sheet: %w", err)
	}
	return nil
}

// List returns every stored record.
func (s *Store) List(ctx context.Context) ([]*v1.Operativo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Get fetches one record by id.
func (s *Store) Get(ctx context.Context, id int64) (*v1.Operativo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, storage.ErrNotFound
}

// Create appends a record with id max(id)+1 and stamps CreatedAt.
func (s *Store) Create(ctx context.Context, op *v1.Operativo) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.read()
	if err != nil {
		return 0, err
	}

	var maxID int64
	for _, existing := range ops {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	op.ID = maxID + 1
	op.CreatedAt = s.clock().UTC()

	if err := s.write(append(ops, op)); err != nil {
		return 0, err
	}

	slog.Debug("[Planilla] Saved operativo", "id", op.ID, "fecha", op.Fecha)
	return op.ID, nil
}

// Update merges a partial update into the stored record.
func (s *Store) Update(ctx context.Context, id int64, upd *v1.OperativoUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.read()
	if err != nil {
		return err
	}
	for _, op := range ops {
		if op.ID != id {
			continue
		}
		upd.Apply(op)
		if err := s.write(ops); err != nil {
			return err
		}
		slog.Debug("[Planilla] Updated operativo", "id", id)
		return nil
	}
	return storage.ErrNotFound
}

// Delete removes one record by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.read()
	if err != nil {
		return err
	}
	kept := ops[:0]
	found := false
	for _, op := range ops {
		if op.ID == id {
			found = true
			continue
		}
		kept = append(kept, op)
	}
	if !found {
		return storage.ErrNotFound
	}
	return s.write(kept)
}

// DeleteAll truncates the sheet back to its header row.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.read()
	if err != nil {
		return 0, err
	}
	if err := s.write(nil); err != nil {
		return 0, err
	}
	slog.Info("[Planilla] Deleted all operativos", "count", len(ops))
	return int64(len(ops)), nil
}

// Backup copies the sheet file to dst. The copy happens under the store lock
// so it never observes a half-written sheet.
func (s *Store) Backup(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read sheet for backup: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	slog.Info("[Planilla] Backup written", "dst", dst)
	return nil
}

// Ping reports whether the sheet file is reachable, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(s.path)
	return err
}

// Close is a no-op; the sheet is reopened per operation.
func (s *Store) Close() error {
	return nil
}
