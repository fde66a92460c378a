package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/usm-dti/event-tracker-api/api/swagger"
	"github.com/usm-dti/event-tracker-api/internal/handler"
	"github.com/usm-dti/event-tracker-api/internal/middleware"
	"github.com/usm-dti/event-tracker-api/internal/repository"
	"github.com/usm-dti/event-tracker-api/internal/service"
	"github.com/usm-dti/event-tracker-api/internal/store"
	"github.com/usm-dti/event-tracker-api/pkg/cache"
	"github.com/usm-dti/event-tracker-api/pkg/config"
	"github.com/usm-dti/event-tracker-api/pkg/database"
	"github.com/usm-dti/event-tracker-api/pkg/jobs"
	"github.com/usm-dti/event-tracker-api/pkg/logger"
	corsmiddleware "github.com/usm-dti/event-tracker-api/pkg/middleware/cors"
	reqidmiddleware "github.com/usm-dti/event-tracker-api/pkg/middleware/requestid"
	"github.com/usm-dti/event-tracker-api/pkg/storage"
)

// @title Event Tracker API
// @version 1.0.0
// @description University event tracking service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	toasts := service.NewToastService(cfg.Toasts.TTL, logr, metrics)
	defer toasts.Close()

	eventStore, err := buildEventStore(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init event store", "backend", cfg.Storage.Backend, "error", err)
	}

	events := service.NewEventService(eventStore, toasts, nil, logr, cfg.Upcoming.Limit)
	auth := service.NewAuthService(service.NewStaticCredentials(cfg.Admin), toasts, cfg.JWT, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	eventHandler := handler.NewEventHandler(events, metrics)
	api.GET("/events", eventHandler.List)
	api.GET("/events/upcoming", eventHandler.Upcoming)
	api.GET("/events/options", eventHandler.Options)
	api.GET("/events/calendar", eventHandler.Calendar)
	api.GET("/events/:id", eventHandler.Get)
	api.POST("/events", middleware.JWT(auth), eventHandler.Create)
	api.PUT("/events/:id", middleware.JWT(auth), eventHandler.Update)
	api.DELETE("/events/:id", middleware.JWT(auth), eventHandler.Delete)

	authHandler := handler.NewAuthHandler(auth)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", middleware.JWT(auth), authHandler.Logout)
	api.GET("/auth/me", middleware.JWT(auth), authHandler.Me)

	toastHandler := handler.NewToastHandler(toasts)
	api.GET("/toasts", toastHandler.List)
	api.DELETE("/toasts/:id", toastHandler.Dismiss)

	api.GET("/metrics/snapshot", middleware.JWT(auth), metricsHandler.Snapshot)

	if cfg.Exports.Enabled {
		exportQueue, err := setupExports(ctx, cfg, api, events, auth, metrics, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to init exports", "error", err)
		}
		defer exportQueue.Stop()
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("shutdown incomplete", "error", err)
	}
}

func buildEventStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.EventStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return repository.NewEventRepository(db), nil
	case config.BackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		blob := store.NewRedisBlob(client, cfg.Storage.StorageKey)
		return store.NewBlobEventStore(ctx, blob, store.SeedEvents(), logr), nil
	default:
		blob := store.NewFileBlob(cfg.Storage.DataDir, cfg.Storage.StorageKey)
		return store.NewBlobEventStore(ctx, blob, store.SeedEvents(), logr), nil
	}
}

func setupExports(ctx context.Context, cfg *config.Config, api *gin.RouterGroup, events *service.EventService, auth *service.AuthService, metrics *service.MetricsService, logr *zap.Logger) (*jobs.Queue, error) {
	localStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exports := service.NewExportService(events, localStorage, signer, logr, metrics)

	queue := jobs.NewQueue("exports", exports.HandleJob, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		Logger:     logr,
	})
	exports.AttachQueue(queue)
	queue.Start(ctx)

	go exports.RunCleanup(ctx, cfg.Exports.CleanupInterval, cfg.Exports.SignedURLTTL)

	exportHandler := handler.NewExportHandler(exports)
	api.POST("/exports", middleware.JWT(auth), exportHandler.Create)
	api.GET("/exports/:id", middleware.JWT(auth), exportHandler.Get)
	api.GET("/exports/download", exportHandler.Download)

	return queue, nil
}
