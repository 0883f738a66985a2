// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/seed"
	"github.com/starford/ansuz/internal/snapshot"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/store"
)

// stack is the wired object graph shared by the HTTP and MCP modes.
type stack struct {
	provider snapshot.Provider
	files    *snapshot.FS // nil unless the file driver is in use
	mirror   *snapshot.Mirror
	broker   *sse.Broker
	svc      *admin.Service
}

func (rt *stack) Close() {
	rt.broker.Close()
	if err := rt.provider.Close(); err != nil {
		slog.Warn("close snapshot provider", slog.String("error", err.Error()))
	}
}

func setup(opts []Option) (*Config, *slog.Logger, error) {
	app := &application{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return app.config, logger, nil
}

// openSnapshot creates the provider selected by cfg. The returned FS is
// non-nil only for the file driver.
func openSnapshot(cfg SnapshotConfig) (snapshot.Provider, *snapshot.FS, error) {
	switch cfg.Driver {
	case SnapshotDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create snapshot dir: %w", err)
		}
		db, err := snapshot.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, nil, nil
	default:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create snapshot dir: %w", err)
		}
		fs, err := snapshot.NewFS(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, fs, nil
	}
}

// build rehydrates the state, falling back to the seed, and wires the store
// to the snapshot mirror and the event broker.
func build(cfg *Config, logger *slog.Logger) (*stack, error) {
	data, err := seed.Default()
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}

	provider, files, err := openSnapshot(cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("init snapshot: %w", err)
	}

	mirror := snapshot.NewMirror(provider, logger)
	st := store.New(mirror.Rehydrate(data.State()))
	st.Subscribe(mirror.Listener())

	broker := sse.NewBroker(cfg.Events.Throttle)

	return &stack{
		provider: provider,
		files:    files,
		mirror:   mirror,
		broker:   broker,
		svc:      admin.NewService(st, broker, data.Analytics),
	}, nil
}

// newHTTPHandler assembles middleware, health checks and the API.
func newHTTPHandler(cfg *Config, rt *stack) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", api.NewRouter(rt.svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, rt.broker))
	return r
}

// reloadFunc applies snapshot rewrites made by other processes.
func reloadFunc(rt *stack, logger *slog.Logger) snapshot.ReloadFunc {
	return func(blob []byte) {
		next, ok := rt.mirror.External(blob)
		if !ok {
			return
		}
		rt.svc.Reload(next)
		logger.Info("snapshot reloaded from disk", slog.Int("bytes", len(blob)))
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("snapshot_driver", cfg.Snapshot.Driver),
		slog.String("snapshot_path", cfg.Snapshot.Path),
		slog.Bool("snapshot_watch", cfg.Snapshot.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	rt, err := build(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newHTTPHandler(cfg, rt),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Reload on external snapshot rewrites.
	g.Go(func() error {
		<-startWatcher(gCtx, cfg, rt, logger)
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...", slog.Int("sse_clients", rt.broker.ClientCount()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdio over the same state as Run. With a
// watched file snapshot, rewrites by another process are reloaded.
func RunMCP(ctx context.Context, opts ...Option) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	rt, err := build(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchDone := startWatcher(watchCtx, cfg, rt, logger)

	logger.Info("Starting MCP server on stdio",
		slog.String("snapshot_driver", cfg.Snapshot.Driver),
		slog.String("snapshot_path", cfg.Snapshot.Path))
	err = mcpserver.New(rt.svc).ServeStdio()

	cancel()
	<-watchDone
	return err
}

// startWatcher runs the snapshot watcher until ctx is cancelled when the
// file driver is watched. The returned channel closes once it has stopped.
func startWatcher(ctx context.Context, cfg *Config, rt *stack, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	if rt.files == nil || !cfg.Snapshot.Watch {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		if err := snapshot.Watch(ctx, rt.files, logger, reloadFunc(rt, logger)); err != nil {
			logger.Warn("snapshot watcher failed", slog.String("error", err.Error()))
		}
	}()
	return done
}
