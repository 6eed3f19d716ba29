package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportCacheContract runs a suite of tests to verify that a ReportCache
// implementation adheres to the defined interface contract.
func RunReportCacheContract(t *testing.T, cache ReportCache) {
	ctx := context.Background()
	fingerprint := "contract-" + time.Now().Format("20060102150405.000000000")

	report := &domain.AnalysisReport{
		Fingerprint:       fingerprint,
		Deterministic:     false,
		Complete:          true,
		Connected:         false,
		UnreachableStates: []domain.State{"S2"},
		EpsilonLoops: domain.LoopReport{
			HasEpsilonLoops: true,
			Loops:           []domain.EpsilonLoop{{States: []domain.State{"S1", "S2"}, Reachable: false}},
			Summary:         domain.LoopSummary{HasEpsilonLoops: true, HasReachableLoops: false},
		},
	}

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+fingerprint)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, report))

		loaded, err := cache.Get(ctx, fingerprint)
		require.NoError(t, err)
		assert.Equal(t, report, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := *report
		updated.Complete = false
		require.NoError(t, cache.Put(ctx, &updated))

		loaded, err := cache.Get(ctx, fingerprint)
		require.NoError(t, err)
		assert.False(t, loaded.Complete)
	})

	t.Run("Isolated Copies", func(t *testing.T) {
		loaded, err := cache.Get(ctx, fingerprint)
		require.NoError(t, err)
		loaded.UnreachableStates[0] = "mutated"

		again, err := cache.Get(ctx, fingerprint)
		require.NoError(t, err)
		assert.Equal(t, []domain.State{"S2"}, again.UnreachableStates)
	})
}
