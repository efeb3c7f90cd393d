package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xolan/lifelog/internal/config"
	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/kv"
	"github.com/xolan/lifelog/internal/logging"
	"github.com/xolan/lifelog/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Records *RecordService
	Stats   *StatsService
	Export  *ExportService
	Config  *ConfigService

	// Location describes where records are kept, for display
	Location string

	Log     logging.Logger
	backend kv.Backend
}

// Option customizes NewServicesWithBackend
type Option func(*options)

type options struct {
	now        func() time.Time
	archiver   export.Archiver
	rasterizer export.Rasterizer
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithArchiver replaces the ZIP archiver; nil disables ZIP export
func WithArchiver(a export.Archiver) Option {
	return func(o *options) {
		o.archiver = a
	}
}

// WithRasterizer replaces the PDF rasterizer; nil disables PDF export
func WithRasterizer(r export.Rasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// NewServices loads the configuration and opens the configured backend
func NewServices(ctx context.Context) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(os.Stderr, level)

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewServicesWithBackend(backend, configPath, cfg, log)
}

// OpenBackend opens the kv backend selected by cfg, filling default paths
func OpenBackend(ctx context.Context, cfg config.Config) (kv.Backend, error) {
	opts := kv.Options{
		Driver:        cfg.Backend,
		Dir:           cfg.DataDir,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		SQLitePath:    cfg.SQLitePath,
	}

	switch cfg.Backend {
	case kv.DriverFile, "":
		if opts.Dir == "" {
			dir, err := storage.GetDataDir()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve data directory: %w", err)
			}
			opts.Dir = dir
		}
	case kv.DriverSQLite:
		if opts.SQLitePath == "" {
			path, err := storage.GetDatabasePath()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve database path: %w", err)
			}
			opts.SQLitePath = path
		}
	}

	backend, err := kv.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	return backend, nil
}

// NewServicesWithBackend creates a new Services instance over an open backend (useful for testing)
func NewServicesWithBackend(backend kv.Backend, configPath string, cfg config.Config, log logging.Logger, opts ...Option) (*Services, error) {
	o := options{
		now:        time.Now,
		archiver:   export.ZipArchiver{},
		rasterizer: export.DashboardRasterizer{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store := storage.NewBlobStore(backend,
		storage.WithKey(cfg.StorageKey),
		storage.WithDiagnostics(func(ctx context.Context, err error) {
			log.Warn(ctx, "records unreadable, showing an empty list", "err", err)
		}),
	)

	statsService := NewStatsService(store, loc, o.now)

	return &Services{
		Records:  NewRecordService(store, store, loc, o.now, log),
		Stats:    statsService,
		Export:   NewExportService(store, statsService, o.archiver, o.rasterizer, cfg.ExportDir, log),
		Config:   NewConfigService(configPath, cfg),
		Location: describeBackend(backend, store.Key(), cfg),
		Log:      log,
		backend:  backend,
	}, nil
}

// Close releases the backend
func (s *Services) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func describeBackend(backend kv.Backend, key string, cfg config.Config) string {
	switch b := backend.(type) {
	case *kv.File:
		return b.Path(key)
	case *kv.SQLite:
		path := cfg.SQLitePath
		if path == "" {
			path, _ = storage.GetDatabasePath()
		}
		return fmt.Sprintf("sqlite %s (key %s)", path, key)
	case *kv.Redis:
		return fmt.Sprintf("redis %s/%d (key %s)", cfg.RedisAddr, cfg.RedisDB, key)
	default:
		return fmt.Sprintf("memory (key %s)", key)
	}
}
