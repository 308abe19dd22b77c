package dsl

// Builder provides a fluent API for constructing definitions without going
// through DSL text.
type Builder struct {
	def *Definition

	// Track current elements for chained calls
	currentBlock *StateBlock
	currentEdge  *TransitionEdge
}

// Build creates a new definition builder with the given union type names.
func Build(stateType, actionType string) *Builder {
	return &Builder{
		def: &Definition{
			StateType:  stateType,
			ActionType: actionType,
			Blocks:     make([]*StateBlock, 0),
		},
	}
}

// State starts a new state block. Subsequent On/To calls attach edges to it.
func (b *Builder) State(id string) *Builder {
	block := &StateBlock{State: id}
	b.def.Blocks = append(b.def.Blocks, block)
	b.currentBlock = block
	b.currentEdge = nil
	return b
}

// On starts a new edge for the current state block with the given action
// alternatives. Must be called after State().
func (b *Builder) On(actions ...string) *Builder {
	if b.currentBlock == nil {
		return b
	}
	edge := &TransitionEdge{Actions: actions}
	b.currentBlock.Edges = append(b.currentBlock.Edges, edge)
	b.currentEdge = edge
	return b
}

// To sets the allowed target states for the current edge.
// Must be called after On().
func (b *Builder) To(targets ...string) *Builder {
	if b.currentEdge != nil {
		b.currentEdge.Targets = append(b.currentEdge.Targets, targets...)
	}
	return b
}

// AST returns the underlying definition node.
func (b *Builder) AST() *Definition {
	return b.def
}

// String renders the definition as DSL text.
func (b *Builder) String() string {
	return b.def.String()
}
