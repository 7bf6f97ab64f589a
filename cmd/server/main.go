package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/application/alert"
	inboxapp "github.com/wady/orderhub/internal/application/inbox"
	ordersapp "github.com/wady/orderhub/internal/application/orders"
	"github.com/wady/orderhub/internal/infrastructure/cache"
	"github.com/wady/orderhub/internal/infrastructure/config"
	"github.com/wady/orderhub/internal/infrastructure/logger"
	"github.com/wady/orderhub/internal/infrastructure/orderservice"
	"github.com/wady/orderhub/internal/interfaces/http/handler"
	"github.com/wady/orderhub/internal/interfaces/http/middleware"
	"github.com/wady/orderhub/internal/interfaces/http/router"
	"github.com/wady/orderhub/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting order hub",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("order_service", cfg.OrderService.BaseURL))

	// Order service client
	client, err := orderservice.NewClient(&orderservice.Config{
		BaseURL:         cfg.OrderService.BaseURL,
		TimeoutSeconds:  cfg.OrderService.TimeoutSeconds,
		CatalogPageSize: cfg.OrderService.CatalogPageSize,
	})
	if err != nil {
		log.Fatal("Failed to create order service client", zap.Error(err))
	}

	// Catalog cache
	productCache, err := cache.NewProductCache(cfg.Cache, log)
	if err != nil {
		log.Fatal("Failed to create product cache", zap.Error(err))
	}
	defer func() { _ = productCache.Close() }()

	// Shared record store and alert feed
	st := store.New()
	feed := alert.NewFeed(0)

	// Application services
	inboxSvc := inboxapp.NewService(client, st, log.Named("inbox"))
	hubSvc := ordersapp.NewHubService(client, st, productCache, log.Named("hub"))
	detailSvc := ordersapp.NewDetailService(client, st, productCache, log.Named("detail"))
	editSvc := ordersapp.NewEditService(client, st, productCache, feed, log.Named("edit"), cfg.Edit.DebounceDelay)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	// Routes
	router.NewRouter(engine).
		Register(handler.NewHealthHandler(cfg.App.Name)).
		Register(handler.NewInboxHandler(inboxSvc)).
		Register(handler.NewOrdersHandler(hubSvc, detailSvc, editSvc)).
		Register(handler.NewAlertsHandler(feed)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Push any debounced instructions edits before exiting
	editSvc.FlushPending()

	if undelivered := feed.Pending(); undelivered > 0 {
		log.Warn("Exiting with undelivered alerts", zap.Int("count", undelivered))
	}

	log.Info("Server exited gracefully")
}
