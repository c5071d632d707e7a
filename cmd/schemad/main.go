package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telhawk-systems/telhawk-schema/internal/cache"
	"github.com/telhawk-systems/telhawk-schema/internal/config"
	"github.com/telhawk-systems/telhawk-schema/internal/handlers"
	"github.com/telhawk-systems/telhawk-schema/internal/logging"
	natsclient "github.com/telhawk-systems/telhawk-schema/internal/messaging/nats"
	schemanats "github.com/telhawk-systems/telhawk-schema/internal/nats"
	"github.com/telhawk-systems/telhawk-schema/internal/server"
	"github.com/telhawk-systems/telhawk-schema/internal/service"
	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "override listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("schema"))
	logging.SetDefault(logger)

	slog.Info("Starting Schema service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	if *addr != "" {
		listenAddr = *addr
	}

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		slog.Error("Failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Catalog loaded",
		slog.String("version", catalog.Version),
		slog.Int("classes", len(catalog.Classes)),
		slog.Int("objects", len(catalog.Objects)),
	)

	// Schema cache (optional - service works without it)
	var schemaCache cache.Cache = cache.NoOp{}
	if cfg.Redis.Enabled && cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.CacheTTL())
		if err != nil {
			slog.Warn("Failed to connect to Redis (continuing without cache)",
				slog.String("url", cfg.Redis.URL),
				slog.String("error", err.Error()))
		} else {
			slog.Info("Connected to Redis", slog.String("url", cfg.Redis.URL))
			schemaCache = redisCache
		}
	} else {
		slog.Info("Schema caching disabled")
	}
	defer schemaCache.Close()

	svc := service.New(catalog, schemaCache)
	h := handlers.New(svc)

	// Initialize NATS client (optional - service works without it)
	var natsHandler *schemanats.Handler
	if cfg.NATS.Enabled {
		natsCfg := natsclient.Config{
			URL:           cfg.NATS.URL,
			Name:          "schema-service",
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: cfg.NATS.ReconnectWait(),
			Timeout:       5 * time.Second,
		}

		natsClient, err := natsclient.NewClient(natsCfg)
		if err != nil {
			slog.Warn("Failed to connect to NATS (continuing without NATS)",
				slog.String("url", cfg.NATS.URL),
				slog.String("error", err.Error()))
		} else {
			slog.Info("Connected to NATS", slog.String("url", cfg.NATS.URL))

			natsHandler = schemanats.NewHandler(natsClient, svc)
			if err := natsHandler.Start(context.Background()); err != nil {
				slog.Warn("Failed to start NATS handler",
					slog.String("error", err.Error()))
				natsClient.Close()
				natsHandler = nil
			} else {
				// Surface broker connectivity on the readiness endpoint
				h = h.WithNATSStatus(natsClient.IsConnected)
			}
		}
	} else {
		slog.Info("NATS messaging disabled")
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      server.NewRouter(h),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("schema service listening on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Println("shutdown signal received")

	// Stop NATS handler first
	if natsHandler != nil {
		log.Println("stopping NATS handler")
		if err := natsHandler.Stop(); err != nil {
			log.Printf("NATS handler shutdown error: %v", err)
		}
		if natsClient := natsHandler.Client(); natsClient != nil {
			natsClient.Close()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// loadCatalog resolves which export to serve: an explicit file wins,
// then a pinned version, then the newest export in the catalog directory.
func loadCatalog(cfg config.CatalogConfig) (*ocsf.Catalog, error) {
	if cfg.File != "" {
		return ocsf.Load(cfg.File)
	}

	version := cfg.Version
	if version == "" {
		versions, err := ocsf.ListVersions(cfg.Dir)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, fmt.Errorf("no catalog exports found in %s", cfg.Dir)
		}
		version = versions[len(versions)-1]
	}

	return ocsf.LoadVersion(cfg.Dir, version)
}
