package automata_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/adapters/memory"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selfLoopJSON = `{
	"states": ["S0", "S1"],
	"alphabet": ["a"],
	"transitions": {"S0": {"a": ["S1"], "": ["S0"]}},
	"startingState": "S0",
	"acceptingStates": ["S1"]
}`

func drain(events <-chan domain.Event) []domain.Event {
	var out []domain.Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func TestEngine_Load(t *testing.T) {
	eng := automata.New()

	f, err := eng.Load([]byte(selfLoopJSON))
	require.NoError(t, err)
	assert.Equal(t, []domain.Symbol{"a"}, f.Alphabet)

	_, err = eng.Load([]byte(`{"states": [], "startingState": "S0"}`))
	assert.ErrorIs(t, err, schema.ErrEmptyStateSet)
}

func TestEngine_Simulate(t *testing.T) {
	var simulated *domain.SimulationEvent
	eng := automata.New(automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) { simulated = e },
	}))
	f := testutils.MustFSA(t, testutils.SingleStep())

	path, err := eng.Simulate(context.Background(), f, "a")
	require.NoError(t, err)
	assert.True(t, path.Accepted)
	require.NotNil(t, simulated)
	assert.Equal(t, 1, simulated.InputLen)
	assert.True(t, simulated.Accepted)

	path, err = eng.Simulate(context.Background(), f, "b")
	require.NoError(t, err)
	assert.False(t, path.Accepted)
	assert.Empty(t, path.Steps)
}

func TestEngine_SimulateRefusesNFA(t *testing.T) {
	eng := automata.New()
	f, err := eng.Load([]byte(selfLoopJSON))
	require.NoError(t, err)

	assert.False(t, eng.IsDeterministic(f))
	_, err = eng.Simulate(context.Background(), f, "a")
	assert.ErrorIs(t, err, domain.ErrNotDeterministic)
}

func TestEngine_ExploreDepth(t *testing.T) {
	f := testutils.MustFSA(t, testutils.EpsilonSelfLoop())

	t.Run("Unbounded Default Refused", func(t *testing.T) {
		_, err := automata.New().Explore(context.Background(), f, "a", automata.ExploreOptions{})
		assert.ErrorIs(t, err, domain.ErrUnboundedWithLoops)
	})

	t.Run("Engine Default", func(t *testing.T) {
		eng := automata.New(automata.WithDefaultMaxDepth(3))
		events, err := eng.Explore(context.Background(), f, "a", automata.ExploreOptions{})
		require.NoError(t, err)
		summary := drain(events)
		assert.Equal(t, 5, summary[len(summary)-2].Summary.TotalPathsExplored)
	})

	t.Run("Request Overrides Default", func(t *testing.T) {
		eng := automata.New(automata.WithDefaultMaxDepth(3))
		depth := 0
		events, err := eng.Explore(context.Background(), f, "a", automata.ExploreOptions{MaxDepth: &depth})
		require.NoError(t, err)
		all := drain(events)
		assert.Equal(t, 2, all[len(all)-2].Summary.TotalPathsExplored)
	})
}

func TestEngine_RejectsUnsafeInput(t *testing.T) {
	eng := automata.New(automata.WithMaxInputSize(4))
	f := testutils.MustFSA(t, testutils.EpsilonSelfLoop())
	depth := 1

	_, err := eng.Simulate(context.Background(), testutils.MustFSA(t, testutils.SingleStep()), "aaaaa")
	assert.ErrorIs(t, err, schema.ErrInputTooLarge)

	_, err = eng.Explore(context.Background(), f, "a\x00", automata.ExploreOptions{MaxDepth: &depth})
	assert.ErrorIs(t, err, schema.ErrControlChar)

	_, err = eng.Explore(context.Background(), f, "\xff", automata.ExploreOptions{MaxDepth: &depth})
	assert.ErrorIs(t, err, schema.ErrInvalidUTF8)
}

func TestEngine_ExploreMaxPaths(t *testing.T) {
	eng := automata.New(automata.WithMaxPaths(2))
	f := testutils.MustFSA(t, testutils.Exponential())

	events, err := eng.Explore(context.Background(), f, strings.Repeat("a", 12), automata.ExploreOptions{})
	require.NoError(t, err)
	all := drain(events)
	summary := all[len(all)-2].Summary
	assert.True(t, summary.Truncated)
	assert.Equal(t, 2, summary.TotalPathsExplored)
}

func TestEngine_ExploreMaxPathsOverride(t *testing.T) {
	eng := automata.New(automata.WithMaxPaths(2))
	f := testutils.MustFSA(t, testutils.Exponential())
	limit := 5

	events, err := eng.Explore(context.Background(), f, strings.Repeat("a", 12), automata.ExploreOptions{MaxPaths: &limit})
	require.NoError(t, err)
	all := drain(events)
	summary := all[len(all)-2].Summary
	assert.True(t, summary.Truncated)
	assert.Equal(t, 5, summary.TotalPathsExplored)
}

// countingCache records cache traffic on top of the memory adapter.
type countingCache struct {
	*memory.Cache
	gets, puts int
	failGet    error
}

func (c *countingCache) Get(ctx context.Context, fingerprint string) (*domain.AnalysisReport, error) {
	c.gets++
	if c.failGet != nil {
		return nil, c.failGet
	}
	return c.Cache.Get(ctx, fingerprint)
}

func (c *countingCache) Put(ctx context.Context, r *domain.AnalysisReport) error {
	c.puts++
	return c.Cache.Put(ctx, r)
}

var _ ports.ReportCache = (*countingCache)(nil)

func TestEngine_AnalyzeCaches(t *testing.T) {
	cache := &countingCache{Cache: memory.New()}
	eng := automata.New(automata.WithCache(cache))
	f := testutils.MustFSA(t, testutils.Disconnected())

	first, err := eng.Analyze(context.Background(), f)
	require.NoError(t, err)
	assert.False(t, first.Connected)
	assert.Equal(t, []domain.State{"S2"}, first.UnreachableStates)
	assert.Equal(t, f.Fingerprint(), first.Fingerprint)

	second, err := eng.Analyze(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.puts)
}

func TestEngine_AnalyzeSurvivesCacheFailure(t *testing.T) {
	cache := &countingCache{Cache: memory.New(), failGet: errors.New("redis down")}
	eng := automata.New(automata.WithCache(cache))
	f := testutils.MustFSA(t, testutils.EpsilonCycle())

	report, err := eng.Analyze(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, report.EpsilonLoops.Summary.HasReachableLoops)
	assert.Equal(t, 1, cache.puts)
}

func TestEngine_Properties(t *testing.T) {
	eng := automata.New()
	f := testutils.MustFSA(t, testutils.CompleteDFA())

	assert.Equal(t, domain.PropertyReport{Deterministic: true, Complete: true, Connected: true}, eng.Properties(f))
	assert.True(t, eng.Connectivity(f).Connected)
	assert.False(t, eng.EpsilonLoops(f).HasEpsilonLoops)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(automata.Version))
}
