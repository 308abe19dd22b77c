package fsm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Compilation errors
	ErrDuplicateState  = errors.New("fsm: duplicate state block")
	ErrDuplicateAction = errors.New("fsm: action declared in more than one edge of a state")
	ErrEmptyDefinition = errors.New("fsm: definition has no state blocks")

	// Dispatch errors
	ErrNotReady = errors.New("fsm: transition table not finalized")
	ErrRejected = errors.New("fsm: action not declared for current state")

	// Registration errors
	ErrUnknownEdge     = errors.New("fsm: no such edge declared")
	ErrMissingHandlers = errors.New("fsm: declared edges lack handlers")
)

// DuplicateActionError reports a state block declaring the same action in
// two different edges, an ambiguity dispatch cannot resolve.
type DuplicateActionError struct {
	State  string
	Action string
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("fsm: state %q declares action %q in more than one edge", e.State, e.Action)
}

func (e *DuplicateActionError) Unwrap() error { return ErrDuplicateAction }

// Edge identifies one declared (source state, action) pair.
type Edge struct {
	State  string
	Action string
}

func (e Edge) String() string {
	return fmt.Sprintf("(%s, %s)", e.State, e.Action)
}

// MissingHandlerError reports declared edges with no registered handler,
// found when the table is finalized.
type MissingHandlerError struct {
	Missing []Edge
}

func (e *MissingHandlerError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, edge := range e.Missing {
		parts[i] = edge.String()
	}
	return fmt.Sprintf("fsm: no handler registered for edges: %s", strings.Join(parts, ", "))
}

func (e *MissingHandlerError) Unwrap() error { return ErrMissingHandlers }

// Rejection is the recoverable dispatch outcome: the action is not declared
// for the current state, including every action offered to a terminal state.
// It carries the original values unchanged; the caller owns the decision to
// retry with a different action or stop.
type Rejection struct {
	State  State
	Action Action
}

func (e *Rejection) Error() string {
	return fmt.Sprintf("fsm: state %q rejects action %q", e.State.StateKind(), e.Action.ActionKind())
}

func (e *Rejection) Unwrap() error { return ErrRejected }

// ContractViolation reports a handler returning a state outside the declared
// target set for its edge: the table and the handler implementation have
// drifted out of sync. It is delivered by panic and must not be treated as
// a recoverable rejection.
type ContractViolation struct {
	State    string   // source state kind
	Action   string   // action kind
	Returned string   // actual returned state kind
	Allowed  []string // declared target set for the edge
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("fsm: contract violation: for state %q and action %q handler returned %q, allowed [%s]",
		e.State, e.Action, e.Returned, strings.Join(e.Allowed, " "))
}
