package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/imcharliesparks/listmaker/internal/adapter/chromedp_renderer"
	"github.com/imcharliesparks/listmaker/internal/adapter/postgres"
	redis_adapter "github.com/imcharliesparks/listmaker/internal/adapter/redis"
	"github.com/imcharliesparks/listmaker/internal/delivery/http/handler"
	"github.com/imcharliesparks/listmaker/internal/delivery/http/router"
	"github.com/imcharliesparks/listmaker/internal/metadata"
	"github.com/imcharliesparks/listmaker/internal/repository"
	"github.com/imcharliesparks/listmaker/internal/usecase"
	"github.com/imcharliesparks/listmaker/pkg/config"
	"github.com/imcharliesparks/listmaker/pkg/logger"
	"github.com/imcharliesparks/listmaker/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Database Connections ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// PostgreSQL
	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Repositories ---
	listRepo := postgres.NewListRepo(dbpool)
	itemRepo := postgres.NewItemRepo(dbpool)
	jobRepo := postgres.NewIngestionJobRepo(dbpool)
	jobQueue := redis_adapter.NewJobQueueRepo(rdb)
	metadataCache := redis_adapter.NewMetadataCacheRepo(rdb)

	// --- Extraction pipeline ---
	renderer := chromedp_renderer.NewChromedpRenderer(cfg.RenderNavTimeout, cfg.RenderSettleDelay)
	defer func() {
		if err := renderer.Shutdown(context.Background()); err != nil {
			slog.Warn("Renderer shutdown failed", "error", err)
		}
	}()

	extractor := usecase.NewCachedExtractor(
		metadata.NewExtractor(renderer, metadata.Config{
			FetchTimeout: cfg.FetchTimeout,
			MaxRedirects: cfg.MaxRedirects,
		}),
		metadataCache,
		cfg.MetadataCacheTTL,
	)

	// --- Use Cases ---
	itemManager := usecase.NewItemManager(listRepo, itemRepo, extractor)
	ingestionManager := usecase.NewIngestionManager(jobRepo, listRepo, jobQueue)
	ingestionProcessor := usecase.NewIngestionProcessor(jobRepo, listRepo, itemRepo, jobQueue, extractor)

	// --- Ingestion Workers ---
	for i := 0; i < cfg.WorkerCount; i++ {
		go runWorker(ctx, ingestionProcessor, jobQueue)
	}
	slog.Info("Ingestion workers started", "count", cfg.WorkerCount)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(itemManager, ingestionManager)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}

// runWorker drains the ingestion queue until the context is cancelled,
// idling briefly whenever the queue is empty.
func runWorker(ctx context.Context, processor usecase.IngestionProcessor, queue repository.JobQueueRepository) {
	const idleDelay = time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		processed, err := processor.ProcessNext(ctx)
		if err != nil {
			slog.Error("Ingestion worker error", "error", err)
		}
		if size, err := queue.Size(ctx); err == nil {
			metrics.JobsInQueue.Set(float64(size))
		}
		if !processed {
			select {
			case <-ctx.Done():
				return
			case <-time.After(idleDelay):
			}
		}
	}
}
