// Package backup runs periodic snapshots of the record store. Stores that
// implement storage.Backupper snapshot themselves; the scheduler only drives
// the cadence and prunes old copies.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fraymodernizacion/control-transito/internal/core/storage"
)

const backupTimeout = 30 * time.Second

// Scheduler snapshots the store on a fixed interval. It is stateless: each
// tick produces one timestamped file under the backup directory.
type Scheduler struct {
	interval time.Duration
	store    storage.RecordStore
	dir      string
	keep     int
	prefix   string
	clock    func() time.Time
}

// NewScheduler builds a backup scheduler. keep bounds how many snapshot
// files survive pruning; prefix names the snapshot files (the file extension
// is whatever the store produces, so the prefix carries the identity).
func NewScheduler(interval time.Duration, store storage.RecordStore, dir string, keep int) *Scheduler {
	if keep <= 0 {
		keep = 7
	}
	return &Scheduler{
		interval: interval,
		store:    store,
		dir:      dir,
		keep:     keep,
		prefix:   "operativos-",
		clock:    time.Now,
	}
}

// Start begins periodic backups. Runs until the context is cancelled; a
// final snapshot is taken on shutdown so the last written state is never
// older than one interval.
func (s *Scheduler) Start(ctx context.Context) error {
	backupper, ok := s.store.(storage.Backupper)
	if !ok {
		slog.Info("[Backup] Store does not support snapshots, scheduler idle")
		<-ctx.Done()
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Backup] Starting backup scheduler",
		"interval", s.interval,
		"dir", s.dir,
		"keep", s.keep,
	)

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx, backupper)
		case <-ctx.Done():
			slog.Info("[Backup] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), backupTimeout)
			defer cancel()

			slog.Info("[Backup] Taking final snapshot before shutdown...")
			s.runOnce(shutdownCtx, backupper)
			slog.Info("[Backup] Final snapshot complete")

			return nil
		}
	}
}

// runOnce takes one snapshot and prunes the directory. Failures are logged,
// never fatal: a missed backup should not take the service down.
func (s *Scheduler) runOnce(ctx context.Context, backupper storage.Backupper) {
	snapCtx, cancel := context.WithTimeout(ctx, backupTimeout)
	defer cancel()

	dst := filepath.Join(s.dir, s.prefix+s.clock().UTC().Format("20060102T150405")+".bak")
	if err := backupper.Backup(snapCtx, dst); err != nil {
		slog.Error("[Backup] Snapshot failed", "error", err, "dst", dst)
		return
	}

	if err := s.prune(); err != nil {
		slog.Warn("[Backup] Prune failed", "error", err)
	}
}

// prune deletes the oldest snapshots beyond the keep bound. Timestamped
// names sort chronologically, so lexicographic order is age order.
func (s *Scheduler) prune() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read backup dir: %w", err)
	}

	var snapshots []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), s.prefix) {
			snapshots = append(snapshots, e.Name())
		}
	}
	if len(snapshots) <= s.keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-s.keep] {
		path := filepath.Join(s.dir, name)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", path, err)
		}
		slog.Debug("[Backup] Pruned old snapshot", "path", path)
	}
	return nil
}
