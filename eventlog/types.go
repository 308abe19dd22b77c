// Package eventlog records transition journals: one event per Advance call,
// grouped into per-machine traces. Journals can be persisted as JSONL or CSV
// or in a SQLite store.
package eventlog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lesurp/state-machine/fsm"
)

// Event represents a single dispatch outcome.
type Event struct {
	ID        string    `json:"id"`
	MachineID string    `json:"machine_id"`
	Seq       uint64    `json:"seq"`
	Source    string    `json:"source"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"` // empty on rejection
	Rejected  bool      `json:"rejected,omitempty"`
	At        time.Time `json:"at"`
}

// Trace is the ordered event sequence for one machine.
type Trace struct {
	MachineID string
	Events    []Event
}

// Log collects traces for any number of machines. It implements
// fsm.Recorder, so it can be attached directly with SetRecorder.
type Log struct {
	mu     sync.Mutex
	traces map[string]*Trace
}

// NewLog creates an empty journal.
func NewLog() *Log {
	return &Log{traces: make(map[string]*Trace)}
}

func newEventID() string {
	return uuid.New().String()
}

// Record implements fsm.Recorder: it stamps the record with an id and
// timestamp and appends it to the machine's trace.
func (l *Log) Record(rec fsm.Record) {
	l.AddEvent(Event{
		ID:        newEventID(),
		MachineID: rec.MachineID,
		Seq:       rec.Seq,
		Source:    rec.Source,
		Action:    rec.Action,
		Target:    rec.Target,
		Rejected:  rec.Rejected,
		At:        time.Now().UTC(),
	})
}

// AddEvent appends an event, creating the machine's trace if needed.
func (l *Log) AddEvent(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	trace, ok := l.traces[e.MachineID]
	if !ok {
		trace = &Trace{MachineID: e.MachineID}
		l.traces[e.MachineID] = trace
	}
	trace.Events = append(trace.Events, e)
}

// Trace returns the trace for one machine, or nil if it has no events.
func (l *Log) Trace(machineID string) *Trace {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.traces[machineID]
}

// Traces returns all traces sorted by machine id for consistent ordering.
func (l *Log) Traces() []*Trace {
	l.mu.Lock()
	defer l.mu.Unlock()

	traces := make([]*Trace, 0, len(l.traces))
	for _, t := range l.traces {
		traces = append(traces, t)
	}
	sort.Slice(traces, func(i, j int) bool {
		return traces[i].MachineID < traces[j].MachineID
	})
	return traces
}

// NumMachines returns the number of machines in the journal.
func (l *Log) NumMachines() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.traces)
}

// NumEvents returns the total number of events across all traces.
func (l *Log) NumEvents() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, t := range l.traces {
		total += len(t.Events)
	}
	return total
}

// Path returns the sequence of state kinds visited by accepted transitions,
// starting from the trace's first source state.
func (t *Trace) Path() []string {
	var path []string
	for _, e := range t.Events {
		if e.Rejected {
			continue
		}
		if len(path) == 0 {
			path = append(path, e.Source)
		}
		path = append(path, e.Target)
	}
	return path
}

// Rejections returns the number of rejected dispatches in the trace.
func (t *Trace) Rejections() int {
	n := 0
	for _, e := range t.Events {
		if e.Rejected {
			n++
		}
	}
	return n
}

// String returns a string representation of the trace.
func (t *Trace) String() string {
	return fmt.Sprintf("Machine %s: %v (%d events, %d rejected)",
		t.MachineID, t.Path(), len(t.Events), t.Rejections())
}
