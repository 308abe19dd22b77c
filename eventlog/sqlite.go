package eventlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lesurp/state-machine/fsm"
)

// Store persists transition journals in a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite store at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		machine_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		source TEXT NOT NULL,
		action TEXT NOT NULL,
		target TEXT,
		rejected INTEGER NOT NULL DEFAULT 0,
		at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_events_machine ON events(machine_id);
	CREATE INDEX IF NOT EXISTS idx_events_machine_seq ON events(machine_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Append inserts one event.
func (s *Store) Append(e Event) error {
	_, err := s.db.Exec(
		`INSERT INTO events (id, machine_id, seq, source, action, target, rejected, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.MachineID, e.Seq, e.Source, e.Action, e.Target, e.Rejected, e.At.Format(time.RFC3339Nano),
	)
	return err
}

// SaveLog inserts every event of the journal.
func (s *Store) SaveLog(log *Log) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, trace := range log.Traces() {
		for _, e := range trace.Events {
			if _, err := tx.Exec(
				`INSERT INTO events (id, machine_id, seq, source, action, target, rejected, at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				e.ID, e.MachineID, e.Seq, e.Source, e.Action, e.Target, e.Rejected, e.At.Format(time.RFC3339Nano),
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("insert event %s: %w", e.ID, err)
			}
		}
	}
	return tx.Commit()
}

// LoadTrace returns the stored trace for one machine, ordered by sequence.
func (s *Store) LoadTrace(machineID string) (*Trace, error) {
	rows, err := s.db.Query(
		`SELECT id, machine_id, seq, source, action, target, rejected, at
		 FROM events WHERE machine_id = ? ORDER BY seq`,
		machineID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	trace := &Trace{MachineID: machineID}
	for rows.Next() {
		var e Event
		var target sql.NullString
		var at string
		if err := rows.Scan(&e.ID, &e.MachineID, &e.Seq, &e.Source, &e.Action, &target, &e.Rejected, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Target = target.String
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		trace.Events = append(trace.Events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trace, nil
}

// Machines returns the ids of all machines with stored events.
func (s *Store) Machines() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT machine_id FROM events ORDER BY machine_id`)
	if err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Journal adapts a Store to fsm.Recorder, writing each record as it
// arrives. Write errors are retained and surfaced by Err.
type Journal struct {
	store *Store
	err   error
}

// NewJournal creates a recorder that writes through to the store.
func NewJournal(store *Store) *Journal {
	return &Journal{store: store}
}

// Record implements fsm.Recorder.
func (j *Journal) Record(rec fsm.Record) {
	e := Event{
		ID:        newEventID(),
		MachineID: rec.MachineID,
		Seq:       rec.Seq,
		Source:    rec.Source,
		Action:    rec.Action,
		Target:    rec.Target,
		Rejected:  rec.Rejected,
		At:        time.Now().UTC(),
	}
	if err := j.store.Append(e); err != nil && j.err == nil {
		j.err = err
	}
}

// Err returns the first write error encountered, if any.
func (j *Journal) Err() error { return j.err }
