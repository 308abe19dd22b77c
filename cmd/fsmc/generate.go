package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lesurp/state-machine/codegen"
	"github.com/lesurp/state-machine/dsl"
	"github.com/lesurp/state-machine/fsm"
)

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	pkg := fs.String("package", "machine", "Package name for generated code")
	output := fs.String("output", "", "Output file (default stdout)")
	verbose := fs.Bool("verbose", false, "Verbose diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fsmc generate <definition.fsm> [options]

Generate Go dispatch code from a definition file.

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
	symbols := fsm.CollectSymbols(def)
	log.Debug().
		Int("states", len(symbols.States)).
		Int("actions", len(symbols.Actions)).
		Int("blocks", len(def.Blocks)).
		Msg("parsed definition")

	code, err := codegen.GenerateGo(def, *pkg)
	if err != nil {
		return err
	}

	if *output == "" {
		fmt.Print(code)
		return nil
	}
	if err := os.WriteFile(*output, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Debug().Str("file", *output).Int("bytes", len(code)).Msg("wrote generated code")
	return nil
}
