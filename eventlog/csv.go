package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"id", "machine_id", "seq", "source", "action", "target", "rejected", "at"}

// WriteCSV writes the journal to w with a header row.
func WriteCSV(w io.Writer, log *Log) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, trace := range log.Traces() {
		for _, e := range trace.Events {
			row := []string{
				e.ID,
				e.MachineID,
				strconv.FormatUint(e.Seq, 10),
				e.Source,
				e.Action,
				e.Target,
				strconv.FormatBool(e.Rejected),
				e.At.Format(time.RFC3339Nano),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing event %s: %w", e.ID, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseCSVReader parses a journal from CSV input written by WriteCSV.
func ParseCSVReader(r io.Reader) (*Log, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected header with %d columns", len(header))
	}

	log := NewLog()
	lineNum := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		lineNum++

		seq, err := strconv.ParseUint(row[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid seq: %w", lineNum, err)
		}
		rejected, err := strconv.ParseBool(row[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rejected flag: %w", lineNum, err)
		}
		at, err := time.Parse(time.RFC3339Nano, row[7])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp: %w", lineNum, err)
		}

		log.AddEvent(Event{
			ID:        row[0],
			MachineID: row[1],
			Seq:       seq,
			Source:    row[3],
			Action:    row[4],
			Target:    row[5],
			Rejected:  rejected,
			At:        at,
		})
	}

	return log, nil
}

// WriteCSVFile writes the journal to a CSV file.
func WriteCSVFile(filename string, log *Log) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, log)
}

// ParseCSV parses a journal from a CSV file.
func ParseCSV(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseCSVReader(f)
}
