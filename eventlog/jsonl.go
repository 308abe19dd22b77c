package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSONL writes every event in the journal to w as JSON Lines, one
// event per line, traces ordered by machine id and events by sequence.
func WriteJSONL(w io.Writer, log *Log) error {
	enc := json.NewEncoder(w)
	for _, trace := range log.Traces() {
		for _, e := range trace.Events {
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("encoding event %s: %w", e.ID, err)
			}
		}
	}
	return nil
}

// WriteJSONLFile writes the journal to a JSONL file.
func WriteJSONLFile(filename string, log *Log) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteJSONL(w, log); err != nil {
		return err
	}
	return w.Flush()
}

// ParseJSONLReader parses a journal from a JSONL reader.
func ParseJSONLReader(r io.Reader) (*Log, error) {
	log := NewLog()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}
		if e.MachineID == "" {
			return nil, fmt.Errorf("line %d: missing machine_id", lineNum)
		}
		log.AddEvent(e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return log, nil
}

// ParseJSONL parses a journal from a JSONL file.
func ParseJSONL(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseJSONLReader(f)
}
