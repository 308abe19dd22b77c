package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lesurp/state-machine/dsl"
	"github.com/lesurp/state-machine/fsm"
)

func inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmc inspect <definition.fsm>

Show the compiled topology: variant sets, declared edges with their
allowed targets, and implicit terminal states.
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read definition: %w", err)
	}

	def, err := dsl.Parse(string(input))
	if err != nil {
		return err
	}
	m, err := fsm.Compile(def)
	if err != nil {
		return err
	}

	symbols := m.Symbols()
	fmt.Printf("=== %s / %s ===\n\n", def.StateType, def.ActionType)
	fmt.Printf("States:  %s\n", strings.Join(symbols.States, ", "))
	fmt.Printf("Actions: %s\n\n", strings.Join(symbols.Actions, ", "))

	fmt.Println("Edges:")
	for _, edge := range m.Edges() {
		fmt.Printf("  %-30s => %s\n", edge.String(),
			strings.Join(m.Targets(edge.State, edge.Action), " | "))
	}

	var terminal []string
	for _, s := range symbols.States {
		if def.Block(s) == nil {
			terminal = append(terminal, s)
		}
	}
	if len(terminal) > 0 {
		fmt.Printf("\nTerminal states: %s\n", strings.Join(terminal, ", "))
	}
	return nil
}
