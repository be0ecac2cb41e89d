// Package main provides the Telnet catalog browser server.
// It loads the unit catalog from YAML content or PostgreSQL and serves it to
// Telnet clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/nyanko/internal/config"
	"github.com/cory-johannsen/nyanko/internal/frontend/handlers"
	"github.com/cory-johannsen/nyanko/internal/frontend/session"
	"github.com/cory-johannsen/nyanko/internal/frontend/telnet"
	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/observability"
	"github.com/cory-johannsen/nyanko/internal/server"
	"github.com/cory-johannsen/nyanko/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	envPath := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	if err := config.LoadDotEnv(*envPath); err != nil {
		log.Fatalf("loading env: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting catalog server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	ctx := context.Background()
	lifecycle := server.NewLifecycle(logger)

	src, err := catalogSource(ctx, cfg, logger, lifecycle)
	if err != nil {
		logger.Fatal("opening catalog source", zap.Error(err))
	}

	loadStart := time.Now()
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("units", cat.Len()),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	acceptor := newAcceptor(cfg, cat, session.NewManager(), logger)
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})

	logger.Info("catalog server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// catalogSource opens the configured catalog source. For PostgreSQL it also
// registers the pool with the lifecycle so it is health-checked and closed
// on shutdown.
func catalogSource(ctx context.Context, cfg config.Config, logger *zap.Logger, lifecycle *server.Lifecycle) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.SourceYAML:
		return catalog.DirSource{Dir: cfg.Catalog.Dir}, nil
	case config.SourcePostgres:
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(dbStart)),
		)

		healthCtx, cancel := context.WithCancel(ctx)
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-healthCtx.Done():
						return nil
					case <-ticker.C:
						if err := pool.Health(healthCtx, 5*time.Second); err != nil {
							logger.Warn("database health check failed", zap.Error(err))
						}
					}
				}
			},
			StopFn: func() {
				cancel()
				pool.Close()
			},
		})
		return postgres.NewCatalogRepository(pool.DB()), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// newAcceptor wires the browser handler to a Telnet acceptor.
func newAcceptor(cfg config.Config, cat *catalog.Catalog, sessions *session.Manager, logger *zap.Logger) *telnet.Acceptor {
	handler := handlers.NewBrowserHandler(cat, sessions, logger)
	return telnet.NewAcceptor(cfg.Telnet, handler, logger)
}
