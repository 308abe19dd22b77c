package fsm

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lesurp/state-machine/dsl"
)

type edgeKey struct {
	state  string
	action string
}

// Machine is the compiled dispatch structure for one definition: the closed
// variant sets, the per-edge allowed-target table, and the handler registry.
// The table is immutable once Ready has succeeded; only state and action
// values flow through it at run time.
//
// A Machine holds no machine state of its own. Callers construct an initial
// state value of any declared variant and thread successive states through
// Advance; multiple logical machines may share one compiled Machine as long
// as each owns its own state value.
type Machine struct {
	id      string
	def     *dsl.Definition
	symbols *SymbolTable

	targets  map[edgeKey][]string
	handlers map[edgeKey]Handler
	ready    bool

	recorder Recorder
	seq      uint64
}

// Compile validates a definition and builds its transition table. Handlers
// are registered afterwards with Handle; dispatch is refused until Ready
// has confirmed every declared edge has one.
func Compile(def *dsl.Definition) (*Machine, error) {
	if len(def.Blocks) == 0 {
		return nil, ErrEmptyDefinition
	}
	if err := Validate(def); err != nil {
		return nil, err
	}

	m := &Machine{
		id:       uuid.New().String(),
		def:      def,
		symbols:  CollectSymbols(def),
		targets:  make(map[edgeKey][]string),
		handlers: make(map[edgeKey]Handler),
	}

	for _, block := range def.Blocks {
		for _, edge := range block.Edges {
			for _, a := range edge.Actions {
				key := edgeKey{state: block.State, action: a}
				m.targets[key] = append([]string(nil), edge.Targets...)
			}
		}
	}

	return m, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(def *dsl.Definition) *Machine {
	m, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return m
}

// ID returns the unique identifier of this compiled machine.
func (m *Machine) ID() string { return m.id }

// Definition returns the definition this machine was compiled from.
func (m *Machine) Definition() *dsl.Definition { return m.def }

// Symbols returns the collected state and action variant sets.
func (m *Machine) Symbols() *SymbolTable { return m.symbols }

// Edges returns every declared (state, action) pair in declaration order.
func (m *Machine) Edges() []Edge {
	var edges []Edge
	for _, block := range m.def.Blocks {
		for _, edge := range block.Edges {
			for _, a := range edge.Actions {
				edges = append(edges, Edge{State: block.State, Action: a})
			}
		}
	}
	return edges
}

// Targets returns the declared allowed-target set for one edge, or nil when
// the edge does not exist.
func (m *Machine) Targets(state, action string) []string {
	return m.targets[edgeKey{state: state, action: action}]
}

// Handle registers the transition handler for one declared edge.
// Registering against an undeclared edge or a finalized table is an error.
func (m *Machine) Handle(state, action string, h Handler) error {
	if m.ready {
		return fmt.Errorf("fsm: table already finalized, cannot register (%s, %s)", state, action)
	}
	key := edgeKey{state: state, action: action}
	if _, ok := m.targets[key]; !ok {
		return fmt.Errorf("%w: (%s, %s)", ErrUnknownEdge, state, action)
	}
	m.handlers[key] = h
	return nil
}

// MustHandle is like Handle but panics on error, allowing chained
// registration.
func (m *Machine) MustHandle(state, action string, h Handler) *Machine {
	if err := m.Handle(state, action, h); err != nil {
		panic(err)
	}
	return m
}

// SetRecorder attaches a journal recorder. Pass nil to disable recording.
func (m *Machine) SetRecorder(r Recorder) {
	m.recorder = r
}

// Ready confirms every declared edge has a registered handler and marks the
// table ready for dispatch. Missing handlers are reported all at once.
func (m *Machine) Ready() error {
	var missing []Edge
	for _, edge := range m.Edges() {
		if _, ok := m.handlers[edgeKey{state: edge.State, action: edge.Action}]; !ok {
			missing = append(missing, edge)
		}
	}
	if len(missing) > 0 {
		return &MissingHandlerError{Missing: missing}
	}
	m.ready = true
	return nil
}

// Advance routes an action to the handler registered for the current
// state's edge and returns the next machine state.
//
// If the action is not declared for the state's kind — including every
// action offered to a state with no declared block — Advance returns a
// *Rejection carrying both values unchanged; match it with
// errors.Is(err, ErrRejected). This is ordinary control flow, not failure.
//
// The handler consumes both values; the caller must not reference them
// after the call. If the handler returns a state whose kind is outside the
// edge's declared target set, Advance panics with a *ContractViolation:
// the compiled table and the handler set have drifted out of sync, and
// that is never coerced into a recoverable result.
func (m *Machine) Advance(state State, action Action) (State, error) {
	if !m.ready {
		return nil, ErrNotReady
	}

	key := edgeKey{state: state.StateKind(), action: action.ActionKind()}
	allowed, ok := m.targets[key]
	if !ok {
		m.record(key.state, key.action, "", true)
		return nil, &Rejection{State: state, Action: action}
	}

	next := m.handlers[key](state, action)

	returned := next.StateKind()
	if !containsKind(allowed, returned) {
		panic(&ContractViolation{
			State:    key.state,
			Action:   key.action,
			Returned: returned,
			Allowed:  allowed,
		})
	}

	m.record(key.state, key.action, returned, false)
	return next, nil
}

func (m *Machine) record(source, action, target string, rejected bool) {
	if m.recorder == nil {
		return
	}
	m.seq++
	m.recorder.Record(Record{
		MachineID: m.id,
		Seq:       m.seq,
		Source:    source,
		Action:    action,
		Target:    target,
		Rejected:  rejected,
	})
}

func containsKind(kinds []string, kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
