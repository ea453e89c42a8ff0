package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"surge/internal/api"
	"surge/internal/api/handlers"
	"surge/internal/config"
	"surge/internal/graphql"
	"surge/internal/logging"
	"surge/internal/repository"
	"surge/internal/repository/document"
	"surge/internal/repository/file"
	"surge/internal/repository/memory"
	"surge/internal/repository/seed"
	"surge/internal/repository/sqlite"
	"surge/internal/services"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()

	// State document
	backend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Store.Driver, err)
	}
	defer backend.Close()

	store, err := document.Open(ctx, backend, seed.Document())
	if err != nil {
		log.Fatalf("open state document: %v", err)
	}

	// Services
	rnd := services.DefaultRandomizer()
	ops := &handlers.Operations{
		PriceLocks:    services.NewPriceLockService(store, store, cfg.Pricing),
		Notifications: services.NewNotificationService(store, store, rnd),
		Surge:         services.NewSurgeService(store, cfg.Pricing, cfg.Heatmap.DefaultCity, rnd),
		Heatmap:       services.NewHeatmapService(store, cfg.Heatmap),
		Drivers:       services.NewDriverService(store, rnd, cfg.Subscriptions.DriverPositionCount, cfg.Heatmap.GeohashPrecision),
		Config:        cfg,
	}

	gqlRouter := graphql.NewRouter()
	ops.Register(gqlRouter)

	engine := gin.New()
	api.NewRouter(handlers.NewGraphQLHandler(gqlRouter)).Setup(engine)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("surge API starting", "addr", srv.Addr, "store", backend.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (repository.Backend, error) {
	switch cfg.Driver {
	case config.StoreDriverFile:
		return file.NewBackend(cfg.Path), nil
	case config.StoreDriverSQLite:
		return sqlite.Open(ctx, cfg.Path)
	case config.StoreDriverMemory:
		return memory.NewBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
