package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/adapters/memory"
	"github.com/aretw0/automata/internal/adapters/redis"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
)

// Stack is an engine together with the resources it was built from.
type Stack struct {
	Engine  *automata.Engine
	Cache   ports.ReportCache
	Metrics *observability.Metrics

	closers []func() error
}

// Close releases the cache connection, if any.
func (s *Stack) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewEngine builds an engine following the configuration:
// a Redis report cache when redis.addr is set (in-memory otherwise),
// debug logging hooks, and Prometheus hooks when metrics is non-nil.
func NewEngine(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Stack, error) {
	stack := &Stack{Metrics: metrics}

	if cfg.Redis.Addr != "" {
		rc := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("redis cache unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Report cache", "backend", "redis", "addr", cfg.Redis.Addr)
		stack.Cache = rc
		stack.closers = append(stack.closers, rc.Close)
	} else {
		logger.Debug("Report cache", "backend", "memory", "size", cfg.Cache.Size, "ttl", cfg.Cache.TTL)
		stack.Cache = memory.New(
			memory.WithCapacity(cfg.Cache.Size),
			memory.WithTTL(cfg.Cache.TTL),
		)
	}

	hooks := []domain.LifecycleHooks{}
	if cfg.Level() <= slog.LevelDebug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks())
	}

	stack.Engine = automata.New(
		automata.WithLogger(logger),
		automata.WithCache(stack.Cache),
		automata.WithLifecycleHooks(observability.Combine(hooks...)),
		automata.WithDefaultMaxDepth(cfg.DefaultMaxDepth),
		automata.WithProgressInterval(cfg.ProgressInterval),
		automata.WithMaxPaths(cfg.MaxPaths),
		automata.WithMaxInputSize(cfg.MaxInputSize),
	)
	return stack, nil
}
