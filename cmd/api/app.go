package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ping-relay/internal/config"
	"ping-relay/internal/relay"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// App encapsulates application dependencies
type App struct {
	router       *gin.Engine
	logger       *slog.Logger
	relayService relay.Service
	cfg          *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	app := &App{
		router:       router,
		logger:       logger,
		relayService: relay.NewRelayService(cfg.UpstreamOptions(), logger),
		cfg:          cfg,
	}

	// Add middleware
	router.Use(app.requestLogger(), gin.Recovery())

	// Register routes
	app.registerRoutes()

	return app
}

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for up to the configured shutdown timeout.
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info("shutting down server", "timeout", app.cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
