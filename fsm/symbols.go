package fsm

import "github.com/lesurp/state-machine/dsl"

// SymbolTable holds the closed identifier sets of a definition. Order is
// first declaration order, so generated variant order is reproducible
// across builds.
type SymbolTable struct {
	States  []string
	Actions []string

	stateSet  map[string]bool
	actionSet map[string]bool
}

// CollectSymbols walks every state block and edge, accumulating the state
// set (block ids and edge targets) and the action set (edge actions).
func CollectSymbols(def *dsl.Definition) *SymbolTable {
	t := &SymbolTable{
		stateSet:  make(map[string]bool),
		actionSet: make(map[string]bool),
	}

	for _, block := range def.Blocks {
		t.addState(block.State)
		for _, edge := range block.Edges {
			for _, a := range edge.Actions {
				t.addAction(a)
			}
			for _, s := range edge.Targets {
				t.addState(s)
			}
		}
	}

	return t
}

func (t *SymbolTable) addState(id string) {
	if !t.stateSet[id] {
		t.stateSet[id] = true
		t.States = append(t.States, id)
	}
}

func (t *SymbolTable) addAction(id string) {
	if !t.actionSet[id] {
		t.actionSet[id] = true
		t.Actions = append(t.Actions, id)
	}
}

// HasState reports whether id is a declared state variant.
func (t *SymbolTable) HasState(id string) bool { return t.stateSet[id] }

// HasAction reports whether id is a declared action variant.
func (t *SymbolTable) HasAction(id string) bool { return t.actionSet[id] }
