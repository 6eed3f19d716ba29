package automata

import _ "embed"

// Version is the release of the engine and its tools.
//
//go:embed VERSION
var Version string
