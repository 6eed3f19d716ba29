package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()

	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	close(ch)

	var m dto.Metric
	require.NoError(t, (<-ch).Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestMetrics_Exploration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	f := testutils.MustFSA(t, testutils.EpsilonSelfLoop())
	ch, err := runtime.Explore(context.Background(), f, runtime.Symbols("a"),
		runtime.WithMaxDepth(3),
		runtime.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)
	for range ch {
	}

	assert.Equal(t, 4.0, counterValue(t, metrics.Paths.WithLabelValues("accepting", "")))
	assert.Equal(t, 1.0, counterValue(t, metrics.Paths.WithLabelValues("rejected", string(domain.ReasonDepthLimit))))
	assert.Equal(t, 1.0, counterValue(t, metrics.DepthLimits))
	assert.Equal(t, 1.0, counterValue(t, metrics.Explorations.WithLabelValues(observability.OutcomeCompleted)))
	assert.Equal(t, 0.0, counterValue(t, metrics.ActiveExplorations))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["automata_paths_total"])
	assert.True(t, names["automata_exploration_paths"])
}

func TestMetrics_Cancelled(t *testing.T) {
	metrics := observability.NewMetrics(nil)
	hooks := metrics.Hooks()

	ctx := context.Background()
	hooks.OnExploreStart(ctx, &domain.ExplorationEvent{})
	assert.Equal(t, 1.0, counterValue(t, metrics.ActiveExplorations))

	hooks.OnExploreEnd(ctx, &domain.ExplorationEvent{Cancelled: true, Err: context.Canceled})
	assert.Equal(t, 1.0, counterValue(t, metrics.Explorations.WithLabelValues(observability.OutcomeCancelled)))
	assert.Equal(t, 0.0, counterValue(t, metrics.ActiveExplorations))
}

func TestMetrics_Simulation(t *testing.T) {
	metrics := observability.NewMetrics(nil)
	metrics.Hooks().OnSimulate(context.Background(), &domain.SimulationEvent{Accepted: true})
	assert.Equal(t, 1.0, counterValue(t, metrics.Simulations.WithLabelValues("true")))
}

func TestCombine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := observability.NewMetrics(nil)

	calls := 0
	counting := domain.LifecycleHooks{
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) { calls++ },
	}

	hooks := observability.Combine(observability.LoggingHooks(logger), metrics.Hooks(), counting, domain.LifecycleHooks{})
	hooks.OnSimulate(context.Background(), &domain.SimulationEvent{InputLen: 2, Steps: 2, Accepted: false})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, counterValue(t, metrics.Simulations.WithLabelValues("false")))
	assert.Contains(t, buf.String(), "msg=simulation")
	assert.Contains(t, buf.String(), "input_len=2")
	assert.NotNil(t, hooks.OnPathFound)
}
