package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/config"
	"github.com/vango-dev/navkit/pkg/location"
	"github.com/vango-dev/navkit/pkg/remote"
	"github.com/vango-dev/navkit/pkg/router"
	"github.com/vango-dev/navkit/pkg/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route table to a browser",
		Long: `Serve the route table to a real browser. The page loads a small
client that keeps the address bar in sync with a router running on the
server over a WebSocket.

The server exposes:
  /              the app shell (any path, so history-mode links load)
  /_navkit/ws    the WebSocket endpoint
  /healthz       a health check
  /metrics       Prometheus metrics (server.metrics)

Examples:
  navkit serve
  navkit serve --addr :3000
  NAVKIT_MODE=hash navkit serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from navkit.json)")

	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	w := cmd.OutOrStdout()

	app, err := newApp(cfg, slog.Default())
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner(w)
	success(w, "Serving %s on http://%s", cfg.Name, ln.Addr())
	info(w, "%d routes, %s mode", len(cfg.Routes), cfg.Mode)
	if cfg.Server.Metrics {
		info(w, "Metrics at http://%s/metrics", ln.Addr())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(w, "\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.remote.Shutdown(shutdownCtx); err != nil {
		warn(w, "sessions did not close: %v", err)
	}
	return httpServer.Shutdown(shutdownCtx)
}

// app is the wired serve stack.
type app struct {
	handler  http.Handler
	remote   *remote.Server
	registry *prometheus.Registry
}

// newApp builds the remote server for cfg with the observers cfg enables
// and mounts it under a chi router with logging and metrics.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	rc, err := cfg.RouterConfig()
	if err != nil {
		return nil, err
	}
	// Fail on a bad table now rather than on the first connection.
	if _, err := cfg.Table(); err != nil {
		return nil, err
	}

	a := &app{}
	var (
		observers []router.Observer
		metrics   remote.Metrics
	)
	if cfg.Server.Metrics {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := telemetry.Prometheus(telemetry.WithRegistry(a.registry))
		observers = append(observers, m)
		metrics = m
	}
	if cfg.Server.Tracing {
		observers = append(observers, telemetry.OpenTelemetry(telemetry.WithTracerName("navkit/serve")))
	}

	opts := []router.Option{router.WithLogger(logger)}
	if len(observers) > 0 {
		opts = append(opts, router.WithObserver(telemetry.Multi(observers...)))
	}

	a.remote = remote.New(func(w location.Window) (*router.Router, error) {
		return router.NewFromConfig(rc, w, opts...)
	}, &remote.Config{
		Title:           cfg.Name,
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		Metrics:         metrics,
		Logger:          logger,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if a.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}
	r.Mount("/", a.remote.Handler())

	a.handler = r
	return a, nil
}
