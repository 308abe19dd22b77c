// Package prover builds zero-knowledge proofs that a recorded transition
// trace conforms to a compiled machine's declared topology, without
// revealing anything beyond the trace itself.
package prover

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/lesurp/state-machine/eventlog"
	"github.com/lesurp/state-machine/fsm"
)

// Step is one accepted transition, by variant kind.
type Step struct {
	Source string
	Action string
	Next   string
}

// StepsFromTrace extracts the accepted transitions of a journal trace.
func StepsFromTrace(t *eventlog.Trace) []Step {
	var steps []Step
	for _, e := range t.Events {
		if e.Rejected {
			continue
		}
		steps = append(steps, Step{Source: e.Source, Action: e.Action, Next: e.Target})
	}
	return steps
}

// TraceCircuit constrains a fixed-length sequence of (source, action, next)
// steps to the declared edge set of one machine. Symbols are indexed by
// their position in the machine's symbol table; each step is packed into a
// single field element and must equal one of the edge codes baked into the
// circuit as constants. Consecutive steps must chain.
type TraceCircuit struct {
	Sources []frontend.Variable `gnark:",public"`
	Actions []frontend.Variable `gnark:",public"`
	Nexts   []frontend.Variable `gnark:",public"`

	// Circuit constants, not witness data.
	allowed    []int64
	numStates  int64
	numActions int64
}

// NewTraceCircuit builds the circuit template for traces of the given
// length over the machine's topology.
func NewTraceCircuit(m *fsm.Machine, steps int) *TraceCircuit {
	symbols := m.Symbols()
	stateIdx := indexOf(symbols.States)
	actionIdx := indexOf(symbols.Actions)

	c := &TraceCircuit{
		Sources:    make([]frontend.Variable, steps),
		Actions:    make([]frontend.Variable, steps),
		Nexts:      make([]frontend.Variable, steps),
		numStates:  int64(len(symbols.States)),
		numActions: int64(len(symbols.Actions)),
	}

	for _, edge := range m.Edges() {
		for _, target := range m.Targets(edge.State, edge.Action) {
			c.allowed = append(c.allowed, c.encode(
				stateIdx[edge.State], actionIdx[edge.Action], stateIdx[target]))
		}
	}

	return c
}

// encode packs one (source, action, next) index triple into a unique code.
func (c *TraceCircuit) encode(src, act, next int64) int64 {
	return (src*c.numActions+act)*c.numStates + next
}

// Define implements frontend.Circuit. For each step the packed code must be
// a member of the allowed edge set (product of differences equals zero),
// and each step's source must equal the previous step's next state.
func (c *TraceCircuit) Define(api frontend.API) error {
	for i := range c.Sources {
		code := api.Add(
			api.Mul(api.Add(api.Mul(c.Sources[i], c.numActions), c.Actions[i]), c.numStates),
			c.Nexts[i],
		)

		prod := frontend.Variable(1)
		for _, t := range c.allowed {
			prod = api.Mul(prod, api.Sub(code, t))
		}
		api.AssertIsEqual(prod, 0)

		if i > 0 {
			api.AssertIsEqual(c.Sources[i], c.Nexts[i-1])
		}
	}
	return nil
}

// Assign produces the witness assignment for a concrete trace. The trace
// length must match the circuit template's.
func Assign(m *fsm.Machine, steps []Step) (*TraceCircuit, error) {
	symbols := m.Symbols()
	stateIdx := indexOf(symbols.States)
	actionIdx := indexOf(symbols.Actions)

	assignment := &TraceCircuit{
		Sources: make([]frontend.Variable, len(steps)),
		Actions: make([]frontend.Variable, len(steps)),
		Nexts:   make([]frontend.Variable, len(steps)),
	}

	for i, s := range steps {
		src, ok := stateIdx[s.Source]
		if !ok {
			return nil, fmt.Errorf("prover: unknown state %q in step %d", s.Source, i)
		}
		act, ok := actionIdx[s.Action]
		if !ok {
			return nil, fmt.Errorf("prover: unknown action %q in step %d", s.Action, i)
		}
		next, ok := stateIdx[s.Next]
		if !ok {
			return nil, fmt.Errorf("prover: unknown state %q in step %d", s.Next, i)
		}
		assignment.Sources[i] = src
		assignment.Actions[i] = act
		assignment.Nexts[i] = next
	}

	return assignment, nil
}

func indexOf(ids []string) map[string]int64 {
	idx := make(map[string]int64, len(ids))
	for i, id := range ids {
		idx[id] = int64(i)
	}
	return idx
}
