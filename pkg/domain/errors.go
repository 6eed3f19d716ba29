package domain

import "errors"

// ErrNotDeterministic is returned when a deterministic run is requested on an automaton
// that has epsilon transitions or more than one target for some (state, symbol).
var ErrNotDeterministic = errors.New("automaton is not deterministic: deterministic simulation requires no epsilon transitions and at most one target per (state, symbol)")

// ErrUnboundedWithLoops is returned when unbounded exploration is requested
// but an epsilon loop is reachable from the starting state.
var ErrUnboundedWithLoops = errors.New("reachable epsilon loop detected: a finite max_depth is required")

// ErrSessionNotFound is returned when a session ID cannot be found in the registry.
var ErrSessionNotFound = errors.New("session not found")
