package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fraymodernizacion/control-transito/internal/backup"
	corecfg "github.com/fraymodernizacion/control-transito/internal/core/config"
	"github.com/fraymodernizacion/control-transito/internal/core/storage"
	"github.com/fraymodernizacion/control-transito/internal/core/storage/planilla"
	"github.com/fraymodernizacion/control-transito/internal/core/storage/sqlite"
	"github.com/fraymodernizacion/control-transito/internal/dashboard"
	"github.com/fraymodernizacion/control-transito/internal/migrations"
	"github.com/fraymodernizacion/control-transito/internal/operativos"
	"github.com/fraymodernizacion/control-transito/internal/report"
	"github.com/fraymodernizacion/control-transito/internal/server"
)

func main() {
	configPath := flag.String("config", "transito.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"driver", cfg.Database.Driver,
		"path", cfg.Database.Path,
		"tipos", cfg.Tipos.Claves(),
	)

	// 2. Initialize Storage
	store, err := buildStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 3. Initialize Services
	operativosSvc := operativos.NewService(store, cfg.Tipos, cfg.Server.MaxBodySizeMB)

	dashboardCtl := dashboard.NewController(store, cfg.Tipos,
		cfg.Dashboard.HistoryLimit,
		cfg.Dashboard.DefaultRangeDays,
	)

	reportSvc := report.NewService(store, cfg.Tipos, dashboardCtl, report.Config{
		Organizacion: cfg.Export.Organizacion,
		Dependencia:  cfg.Export.Dependencia,
		MaxDetalle:   cfg.Export.MaxDetalle,
	})

	// 4. Initialize Server
	var health server.HealthChecker
	if p, ok := store.(server.HealthChecker); ok {
		health = p
	}

	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), health, cfg.Server.Mode)
	operativosSvc.RegisterRoutes(srv.Engine)
	dashboardCtl.RegisterRoutes(srv.Engine)
	reportSvc.RegisterRoutes(srv.Engine)

	// 5. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Backup.Enabled {
		interval, err := time.ParseDuration(cfg.Backup.EffectiveInterval())
		if err != nil {
			slog.Error("Invalid backup interval", "value", cfg.Backup.EffectiveInterval(), "error", err)
			os.Exit(1)
		}
		scheduler := backup.NewScheduler(interval, store, cfg.Backup.Dir, cfg.Backup.Keep)
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
		slog.Info("Backup scheduler initialized",
			"interval", interval,
			"dir", cfg.Backup.Dir,
			"keep", cfg.Backup.Keep,
		)
	} else {
		slog.Info("Backup scheduler disabled by config")
	}

	// HTTP server blocks until ctx is cancelled.
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// buildStore selects the storage backend from config. Both backends expose
// the same RecordStore semantics; the sqlite one additionally needs its
// schema migrated before the adapter will prepare statements.
func buildStore(cfg *corecfg.Config) (storage.RecordStore, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		if err := migrateSQLite(cfg.Database.Path, cfg.Database.AutoMigrate); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		return sqlite.NewAdapter(
			cfg.Database.Path,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
	case "planilla":
		return planilla.NewStore(cfg.Database.Path, cfg.Tipos)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// migrateSQLite runs migrations on a dedicated connection. The adapter
// validates the schema when it opens, so this must complete first.
func migrateSQLite(path string, autoMigrate bool) error {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer db.Close()

	return migrations.RunMigrations(db, autoMigrate)
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
