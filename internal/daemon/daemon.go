package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ritual-sh/ritual/internal/api"
	"github.com/ritual-sh/ritual/internal/app/achievement"
	"github.com/ritual-sh/ritual/internal/app/freeze"
	"github.com/ritual-sh/ritual/internal/app/level"
	"github.com/ritual-sh/ritual/internal/app/points"
	"github.com/ritual-sh/ritual/internal/app/streak"
	"github.com/ritual-sh/ritual/internal/health"
	_ "github.com/ritual-sh/ritual/internal/infra/metrics" // Register Prometheus metrics
	"github.com/ritual-sh/ritual/internal/infra/sqlite"
)

// Daemon is the core ritual runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server

	Points       *points.Calculator
	Streaks      *streak.Service
	Level        *level.Service
	Achievements *achievement.Service
	Freeze       *freeze.Service
	Health       *health.Checker

	version string
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	dataDir := cfg.Data.Dir
	if dataDir == "" {
		dataDir = ritualHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config:       cfg,
		DB:           db,
		Points:       points.NewCalculator(db),
		Streaks:      streak.NewService(db),
		Level:        level.NewService(db),
		Achievements: achievement.NewService(db),
		Freeze:       freeze.NewService(db),
		Health:       health.NewChecker(db, dataDir),
		version:      version,
	}

	srv := api.NewServer(d.Points, d.Streaks, d.Level, d.Achievements, d.Freeze, version)
	srv.SetHealth(d.Health)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Periodic health checks
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("ritual serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
