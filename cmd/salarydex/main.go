package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/salarydex/internal/config"
	dbElastic "github.com/kailas-cloud/salarydex/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/salarydex/internal/db/redis"
	logpkg "github.com/kailas-cloud/salarydex/internal/logger"
	"github.com/kailas-cloud/salarydex/internal/metrics"
	"github.com/kailas-cloud/salarydex/internal/repository/aggcache"
	collectionrepo "github.com/kailas-cloud/salarydex/internal/repository/collection"
	politicianrepo "github.com/kailas-cloud/salarydex/internal/repository/politician"
	chiTransport "github.com/kailas-cloud/salarydex/internal/transport/chi"
	collectionuc "github.com/kailas-cloud/salarydex/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/salarydex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/salarydex/internal/usecase/ingest"
	politicianuc "github.com/kailas-cloud/salarydex/internal/usecase/politician"
	"github.com/kailas-cloud/salarydex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting salarydex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("es_addresses", cfg.Elasticsearch.Addresses),
		zap.String("collection", cfg.Collection.Name),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	store, err := dbElastic.NewStore(dbElastic.Config{
		Addresses:  cfg.Elasticsearch.Addresses,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		CACertPath: cfg.Elasticsearch.CACertPath,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
		Compress:   cfg.Elasticsearch.Compress,
		Bulk: dbElastic.BulkConfig{
			Workers:       cfg.Bulk.Workers,
			FlushBytes:    cfg.Bulk.FlushBytes,
			FlushInterval: time.Duration(cfg.Bulk.FlushIntervalSec) * time.Second,
			ChunkSize:     cfg.Bulk.ChunkSize,
		},
	})
	if err != nil {
		logger.Fatal("Failed to create search engine store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the search engine to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Elasticsearch.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	// Register ingestion metrics explicitly (no init())
	metrics.RegisterIngestMetrics()

	// Repositories
	collRepo := collectionrepo.New(store).WithSettings(collectionrepo.Settings{
		Shards:   cfg.Collection.Shards,
		Replicas: cfg.Collection.Replicas,
	})
	polRepo := politicianrepo.New(store).WithDistinctSize(cfg.Collection.DistinctSize)
	bulkRepo := politicianrepo.NewBulk(store).WithMaxReportedFailures(cfg.Bulk.MaxReportedFailures)

	// Use cases
	collSvc := collectionuc.New(collRepo)
	ingestSvc := ingestuc.New(collSvc, collRepo, bulkRepo).WithOptions(ingestuc.Options{
		Collection:  cfg.Collection.Name,
		StopOnError: cfg.Bulk.StopOnError,
		Timeout:     time.Duration(cfg.Bulk.TimeoutSec) * time.Second,
		IDColumns:   cfg.Bulk.IDColumns,
		Comma:       cfg.Bulk.Comma(),
	})
	polSvc := politicianuc.New(polRepo).
		WithCollection(cfg.Collection.Name).
		WithPagination(cfg.Pagination.MaxPageSize)

	// Optional aggregation cache. Pass nil interfaces (not typed nil pointers)
	// when it is disabled.
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		aggCache := aggcache.New(
			polRepo, cache, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.AggregationCacheTotal, logger,
		)
		collSvc.WithCache(aggCache)
		ingestSvc.WithCache(aggCache)
		polSvc.WithCache(aggCache)
		cachePinger = cache
	}

	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(collSvc, ingestSvc, polSvc, healthSvc, logger).
		WithUploadMemory(int64(cfg.Bulk.MaxMemoryMB) << 20)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
