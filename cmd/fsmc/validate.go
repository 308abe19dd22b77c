package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lesurp/state-machine/dsl"
	"github.com/lesurp/state-machine/fsm"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Verbose diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmc validate <definition.fsm> [options]

Parse and validate a definition. Exits non-zero on the first syntax or
consistency error.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}

	log := newLogger(*verbose)

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read definition: %w", err)
	}

	def, err := dsl.Parse(string(input))
	if err != nil {
		return err
	}
	log.Debug().Str("state_type", def.StateType).Str("action_type", def.ActionType).Msg("parsed")

	if err := fsm.Validate(def); err != nil {
		return err
	}

	symbols := fsm.CollectSymbols(def)
	fmt.Printf("%s: valid (%d states, %d actions, %d blocks)\n",
		fs.Arg(0), len(symbols.States), len(symbols.Actions), len(def.Blocks))
	return nil
}
