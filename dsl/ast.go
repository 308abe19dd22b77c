package dsl

import "strings"

// Definition represents a parsed state machine definition: the two union
// type names plus the declared state blocks, in declaration order.
type Definition struct {
	StateType  string
	ActionType string
	Blocks     []*StateBlock
}

// StateBlock represents one source state and its outgoing edges.
type StateBlock struct {
	State string
	Edges []*TransitionEdge
}

// TransitionEdge represents one declared edge: any of Actions occurring in
// the enclosing block's state allows the handler to produce any of Targets.
type TransitionEdge struct {
	Actions []string
	Targets []string
}

// Block returns the block declared for the given state, or nil when the
// state only ever appears as an edge target (an implicit terminal state).
func (d *Definition) Block(state string) *StateBlock {
	for _, b := range d.Blocks {
		if b.State == state {
			return b
		}
	}
	return nil
}

// String renders the definition back into DSL text.
func (d *Definition) String() string {
	var b strings.Builder
	b.WriteString(d.StateType)
	b.WriteString(",\n")
	b.WriteString(d.ActionType)
	b.WriteString(",\n")

	for _, block := range d.Blocks {
		b.WriteString("\n")
		b.WriteString(block.State)
		b.WriteString(" {\n")
		for _, e := range block.Edges {
			b.WriteString("\t")
			b.WriteString(strings.Join(e.Actions, " | "))
			b.WriteString(" => ")
			b.WriteString(strings.Join(e.Targets, " | "))
			b.WriteString(",\n")
		}
		b.WriteString("},\n")
	}

	return b.String()
}
