// Package fsm compiles a parsed state machine definition into an executable
// dispatch structure: a transition table keyed by (state kind, action kind)
// routing to host-supplied handlers, with a per-edge post-condition check
// that the handler's result stays inside the declared target set.
package fsm

// State is one concrete variant of a machine's state set. The kind string
// identifies the variant; the payload is whatever the implementing type
// carries.
type State interface {
	StateKind() string
}

// Action is the marker capability: a type declares itself usable as an
// action payload. No behavior is required beyond naming its variant.
type Action interface {
	ActionKind() string
}

// Handler is the transition capability for one (state kind, action kind)
// pair. It consumes both values and returns the next full machine state,
// which may reuse the same state kind (a self-loop). Neither input may be
// used by the caller after the call.
type Handler func(state State, action Action) State

// Record describes one Advance call, for journaling.
type Record struct {
	MachineID string
	Seq       uint64
	Source    string
	Action    string
	Target    string // empty on rejection
	Rejected  bool
}

// Recorder receives one record per Advance call. Records carry variant
// kinds only, never state or action payloads.
type Recorder interface {
	Record(rec Record)
}
