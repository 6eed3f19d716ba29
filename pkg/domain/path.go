package domain

// ExecutionStep is one edge traversed during a run.
// Symbol is Epsilon ("") for epsilon moves.
type ExecutionStep struct {
	From   State  `json:"from"`
	Symbol Symbol `json:"symbol"`
	To     State  `json:"to"`
}

// ExecutionPath is the ordered list of steps of a run and its outcome.
type ExecutionPath struct {
	Steps      []ExecutionStep `json:"path"`
	FinalState State           `json:"final_state"`
	Accepted   bool            `json:"accepted"`
}

// MaxEpsilonRun returns the longest run of consecutive epsilon steps in the path.
func (p *ExecutionPath) MaxEpsilonRun() int {
	longest, current := 0, 0
	for _, st := range p.Steps {
		if st.Symbol != Epsilon {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// Consumed returns the input symbols read along the path, in order.
func (p *ExecutionPath) Consumed() string {
	var b []byte
	for _, st := range p.Steps {
		b = append(b, st.Symbol...)
	}
	return string(b)
}
