package analysis_test

import (
	"testing"

	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/analysis"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestProperties(t *testing.T) {
	tests := []struct {
		name          string
		doc           schema.FSA
		deterministic bool
		complete      bool
		connected     bool
	}{
		{
			name:          "Complete Connected DFA",
			doc:           testutils.CompleteDFA(),
			deterministic: true,
			complete:      true,
			connected:     true,
		},
		{
			name:          "Partial DFA",
			doc:           testutils.SingleStep(),
			deterministic: true,
			complete:      false,
			connected:     true,
		},
		{
			name:          "Epsilon Makes It Nondeterministic",
			doc:           testutils.EpsilonSelfLoop(),
			deterministic: false,
			complete:      false,
			connected:     true,
		},
		{
			name:          "Multiple Targets",
			doc:           testutils.BranchingNFA(),
			deterministic: false,
			complete:      false,
			connected:     true,
		},
		{
			name:          "Disconnected",
			doc:           testutils.Disconnected(),
			deterministic: true,
			complete:      false,
			connected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutils.MustFSA(t, tt.doc)

			assert.Equal(t, tt.deterministic, analysis.IsDeterministic(f), "deterministic")
			assert.Equal(t, tt.complete, analysis.IsComplete(f), "complete")
			assert.Equal(t, tt.connected, analysis.IsConnected(f), "connected")

			props := analysis.Properties(f)
			assert.Equal(t, tt.deterministic, props.Deterministic)
			assert.Equal(t, tt.complete, props.Complete)
			assert.Equal(t, tt.connected, props.Connected)
		})
	}
}

func TestConnectivity_ListsUnreachableStates(t *testing.T) {
	f := testutils.MustFSA(t, testutils.Disconnected())

	report := analysis.Connectivity(f)
	assert.False(t, report.Connected)
	assert.Equal(t, []string{"S2"}, report.UnreachableStates)
}

func TestConnectivity_FollowsEpsilon(t *testing.T) {
	f := testutils.MustFSA(t, testutils.EpsilonCycle())

	report := analysis.Connectivity(f)
	assert.True(t, report.Connected)
	assert.NotNil(t, report.UnreachableStates)
	assert.Empty(t, report.UnreachableStates)
}

func TestAnalyze(t *testing.T) {
	f := testutils.MustFSA(t, testutils.DetachedEpsilonCycle())

	report := analysis.Analyze(f)
	assert.Equal(t, f.Fingerprint(), report.Fingerprint)
	assert.False(t, report.Deterministic)
	assert.False(t, report.Connected)
	assert.Equal(t, []string{"S1", "S2"}, report.UnreachableStates)
	assert.True(t, report.EpsilonLoops.HasEpsilonLoops)
	assert.False(t, report.EpsilonLoops.Summary.HasReachableLoops)
}
