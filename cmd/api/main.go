package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nitiprint/nitiprint-api/api/swagger"
	"github.com/nitiprint/nitiprint-api/internal/dto"
	"github.com/nitiprint/nitiprint-api/internal/handler"
	internalmiddleware "github.com/nitiprint/nitiprint-api/internal/middleware"
	"github.com/nitiprint/nitiprint-api/internal/rasterize"
	"github.com/nitiprint/nitiprint-api/internal/repository"
	"github.com/nitiprint/nitiprint-api/internal/service"
	"github.com/nitiprint/nitiprint-api/internal/storage"
	"github.com/nitiprint/nitiprint-api/pkg/cache"
	"github.com/nitiprint/nitiprint-api/pkg/config"
	"github.com/nitiprint/nitiprint-api/pkg/database"
	"github.com/nitiprint/nitiprint-api/pkg/jobs"
	"github.com/nitiprint/nitiprint-api/pkg/logger"
	corsmiddleware "github.com/nitiprint/nitiprint-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nitiprint/nitiprint-api/pkg/middleware/requestid"
	"github.com/nitiprint/nitiprint-api/pkg/notify"
)

// @title NitiPrint API
// @version 1.0.0
// @description Print order intake with per-page color analysis
// @BasePath /
// @schemes http
// @securityDefinitions.basic BasicAuth

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

	if err := dto.RegisterValidations(); err != nil {
		logr.Sugar().Fatalw("failed to register validations", "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, list caching disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	store, err := storage.NewArtifactStore(cfg.Storage, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init artifact store", "error", err)
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Notifier.Enabled {
		notifier = notify.NewFonnteNotifier(notify.FonnteConfig{
			URL:     cfg.Notifier.URL,
			Token:   cfg.Notifier.Token,
			Target:  cfg.Notifier.Target,
			Timeout: cfg.Notifier.Timeout,
		})
	}

	notifyQueue := jobs.NewQueue("notifications", func(ctx context.Context, job jobs.Job) error {
		summary, ok := job.Payload.(notify.OrderSummary)
		if !ok {
			return fmt.Errorf("unexpected payload for job %s", job.ID)
		}
		return notifier.Notify(ctx, summary)
	}, jobs.QueueConfig{
		Workers:    2,
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
		Logger:     logr,
	})

	metricsSvc := service.NewMetricsService()
	rasterizer := rasterize.NewPopplerRasterizer(cfg.Rasterizer, logr)
	classifier := service.NewPageClassifier()

	analysisSvc := service.NewAnalysisService(rasterizer, classifier, store, metricsSvc, logr)
	orderRepo := repository.NewOrderRepository(db)
	orderSvc := service.NewOrderService(orderRepo, store, notifyQueue, redisClient, metricsSvc, logr,
		service.OrderServiceConfig{CacheTTL: cfg.Redis.CacheTTL})
	retentionSvc := service.NewRetentionService(store, metricsSvc, logr,
		cfg.Storage.RetentionTTL, cfg.Storage.SweepInterval)

	analyzeHandler := handler.NewAnalyzeHandler(analysisSvc, cfg.Storage.MaxUploadBytes)
	orderHandler := handler.NewOrderHandler(orderSvc)
	adminHandler := handler.NewAdminHandler(orderSvc, store)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/analyze-pdf", analyzeHandler.Analyze)
	api.POST("/confirm-order", orderHandler.Confirm)

	admin := api.Group("/admin", internalmiddleware.BasicAuth(internalmiddleware.AdminCredentials{
		User:         cfg.Admin.User,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}))
	admin.GET("/orders", adminHandler.ListOrders)
	admin.PATCH("/orders/:orderId/status", adminHandler.UpdateStatus)
	admin.POST("/orders/bulk-delete", adminHandler.BulkDelete)
	admin.GET("/orders/:orderId/file", orderHandler.Download)
	admin.GET("/orders/:orderId/receipt", adminHandler.Receipt)
	admin.GET("/temp-files", adminHandler.ListTempFiles)
	admin.POST("/temp-files/delete", adminHandler.DeleteTempFiles)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifyQueue.Start(ctx)
	defer notifyQueue.Stop()
	go retentionSvc.Run(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
