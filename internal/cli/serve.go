package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/config"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take once shutdown starts.
const shutdownTimeout = 5 * time.Second

// NewServer assembles the HTTP server described by cfg. The caller must Close the returned stack.
func NewServer(ctx context.Context, cfg config.Config, logger *slog.Logger, sessions *session.Manager) (*http.Server, *Stack, error) {
	var (
		metrics        *observability.Metrics
		metricsHandler http.Handler
	)
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = observability.NewMetrics(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	stack, err := NewEngine(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, nil, err
	}

	opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if sessions != nil {
		opts = append(opts, httpAdapter.WithSessions(sessions))
	}
	if metricsHandler != nil {
		opts = append(opts, httpAdapter.WithMetricsHandler(metricsHandler))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpAdapter.NewHandler(stack.Engine, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, stack, nil
}

// Serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	sessions := session.NewManager(session.WithLogger(logger))
	srv, stack, err := NewServer(ctx, cfg, logger, sessions)
	if err != nil {
		return err
	}
	defer stack.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting automata server", "addr", srv.Addr, "metrics", cfg.Metrics)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "active_sessions", len(sessions.Active()))

		// Streams only end when their exploration does.
		for _, info := range sessions.Active() {
			_ = sessions.Cancel(info.ID)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}
