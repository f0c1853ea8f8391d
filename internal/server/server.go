// Package server boots the Veyra admin: configuration, database, cache,
// storage, log shipping, the live feed, background jobs, and finally the
// HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veyralabs/veyra/app/routes"
	"github.com/veyralabs/veyra/config"
	"github.com/veyralabs/veyra/internal/maintenance"
	"github.com/veyralabs/veyra/pkg/cache"
	"github.com/veyralabs/veyra/pkg/database"
	"github.com/veyralabs/veyra/pkg/event"
	"github.com/veyralabs/veyra/pkg/logger"
	"github.com/veyralabs/veyra/pkg/metrics"
	"github.com/veyralabs/veyra/pkg/middleware"
	"github.com/veyralabs/veyra/pkg/reqid"
	"github.com/veyralabs/veyra/pkg/router"
	"github.com/veyralabs/veyra/pkg/schedule"
	"github.com/veyralabs/veyra/pkg/session"
	"github.com/veyralabs/veyra/pkg/storage"
	"github.com/veyralabs/veyra/pkg/ws"
)

// catalogEvents is every event the services fire; each one is mirrored onto
// the dashboard feed.
var catalogEvents = []string{
	"brand.created", "brand.updated", "brand.deleted",
	"category.created", "category.updated", "category.deleted",
	"product.created", "product.updated", "product.deleted",
}

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log shipping disabled", "error", err)
		} else {
			logger.EnableMongo(h)
			defer h.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache and sessions degrade to no-ops", "error", err)
	}
	storage.Connect()

	hub := ws.NewHub()
	go hub.Run()
	for _, name := range catalogEvents {
		name := name
		event.Listen(name, func(payload interface{}) {
			hub.Publish(name, payload)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := maintenance.NewSweeper()
	schedule.Every(15).Minutes().Name("media.sweep").WithoutOverlapping().Run(func() {
		if n, err := sweeper.Sweep(); err != nil {
			logger.Error("media sweep failed", "error", err)
		} else if n > 0 {
			logger.Info("media sweep removed orphans", "count", n)
		}
	})
	schedule.Start(ctx)

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery           — catches panics before they kill the goroutine
	//  3. Request ID         — inject unique ID before anything logs
	//  4. Logger             — logs request_id from context
	//  5. Session            — load/create session cookie via Redis
	//  6. CORS               — set CORS headers
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	routes.Register(r, hub)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("veyra admin listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
