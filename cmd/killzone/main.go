package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RichStephens/killzone/internal/api"
	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/events"
	"github.com/RichStephens/killzone/internal/logging"
	"github.com/RichStephens/killzone/internal/service"
	"github.com/RichStephens/killzone/internal/version"
	"github.com/RichStephens/killzone/internal/world"

	"github.com/gin-gonic/gin"
)

func main() {
	// Config path may be provided via KILLZONE_CONFIG; a missing file means
	// built-in defaults plus environment overrides.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := setupTracing(ctx, cfg)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logging.Error("Failed to flush traces", err, nil)
		}
	}()

	repo := createRepositoryOrExit(cfg.DatabasePath)

	w, err := world.New(cfg.WorldConfig())
	if err != nil {
		logging.Fatal("Failed to create world", err, nil)
	}
	hub := events.NewHub(0)
	defer hub.Close()
	arena := service.NewArena(w, repo, hub)

	sweeperDone := service.StartCollisionSweeper(ctx, arena, cfg.CollisionSweepInterval)

	handler := api.NewArenaHandler(arena, cfg.LeaderboardSize)
	router := api.NewRouter(handler, api.NewStreamHandler(hub), api.RouterOptions{AllowReset: cfg.AllowReset})

	logging.Info("Starting "+version.Current().String(), logging.Fields{
		"world_width":  w.Width(),
		"world_height": w.Height(),
		"allow_reset":  cfg.AllowReset,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Close subscriber streams first so Shutdown is not held up by
	// long-lived websocket connections.
	srv.RegisterOnShutdown(hub.Close)

	if err := serve(ctx, srv, cfg.ShutdownTimeout); err != nil {
		logging.Fatal("Server failed", err, nil)
	}
	stop()
	<-sweeperDone
}
