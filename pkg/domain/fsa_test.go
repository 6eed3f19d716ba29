package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFSA_Normalizes(t *testing.T) {
	f := NewFSA(
		[]State{"S1", "S0", "S1"},
		[]Symbol{"b", "a"},
		TransitionFunction{
			"S0": {"a": {"S1", "S0", "S1"}, Epsilon: {"S1"}, "b": {}},
		},
		"S0",
		[]State{"S1"},
	)

	assert.Equal(t, []State{"S0", "S1"}, f.States)
	assert.Equal(t, []Symbol{"a", "b"}, f.Alphabet)
	assert.Equal(t, []State{"S0", "S1"}, f.Targets("S0", "a"))
	assert.Nil(t, f.Targets("S0", "b"), "empty target lists are dropped")
	assert.Equal(t, []Symbol{"a"}, f.Symbols("S0"))
	assert.Equal(t, []State{"S1"}, f.EpsilonTargets("S0"))
	assert.True(t, f.HasEpsilonTransitions())
	assert.True(t, f.IsAccepting("S1"))
	assert.False(t, f.IsAccepting("S0"))
	assert.True(t, f.HasState("S0"))
	assert.False(t, f.HasState("S9"))
	assert.Equal(t, []State{"S0", "S1"}, f.Successors("S0"))
}

func TestFSA_Fingerprint(t *testing.T) {
	build := func(states ...State) *FSA {
		return NewFSA(states, []Symbol{"a"}, TransitionFunction{"S0": {"a": {"S1"}}}, "S0", []State{"S1"})
	}

	a := build("S0", "S1")
	b := build("S1", "S0")
	c := build("S0", "S1", "S2")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "declaration order must not matter")
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}

func TestExecutionPath_MaxEpsilonRun(t *testing.T) {
	p := &ExecutionPath{Steps: []ExecutionStep{
		{From: "S0", Symbol: Epsilon, To: "S0"},
		{From: "S0", Symbol: Epsilon, To: "S0"},
		{From: "S0", Symbol: "a", To: "S1"},
		{From: "S1", Symbol: Epsilon, To: "S2"},
	}}

	assert.Equal(t, 2, p.MaxEpsilonRun())
	assert.Equal(t, "a", p.Consumed())
	assert.Equal(t, 0, (&ExecutionPath{}).MaxEpsilonRun())
}

func TestEvent_Payload(t *testing.T) {
	path := &ExecutionPath{
		Steps:      []ExecutionStep{{From: "S0", Symbol: "a", To: "S1"}},
		FinalState: "S1",
	}

	t.Run("Rejected Path Carries Reason", func(t *testing.T) {
		data, err := json.Marshal(Event{Type: EventRejectedPath, Path: path, Reason: ReasonNoTransition}.Payload())
		require.NoError(t, err)
		assert.JSONEq(t, `{"path":[{"from":"S0","symbol":"a","to":"S1"}],"final_state":"S1","reason":"NoTransition"}`, string(data))
	})

	t.Run("Accepting Path Omits Reason", func(t *testing.T) {
		data, err := json.Marshal(Event{Type: EventAcceptingPath, Path: path}.Payload())
		require.NoError(t, err)
		assert.JSONEq(t, `{"path":[{"from":"S0","symbol":"a","to":"S1"}],"final_state":"S1"}`, string(data))
	})

	t.Run("Empty Path Encodes As Array", func(t *testing.T) {
		data, err := json.Marshal(Event{Type: EventAcceptingPath, Path: &ExecutionPath{FinalState: "S0"}}.Payload())
		require.NoError(t, err)
		assert.JSONEq(t, `{"path":[],"final_state":"S0"}`, string(data))
	})

	t.Run("End Is Empty Object", func(t *testing.T) {
		data, err := json.Marshal(Event{Type: EventEnd}.Payload())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})
}
