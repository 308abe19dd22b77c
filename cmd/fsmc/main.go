package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := generate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := inspect(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("fsmc version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fsmc - state machine definition compiler

Usage:
  fsmc <command> [options]

Commands:
  generate   Generate Go dispatch code from a definition
  validate   Validate a definition
  inspect    Show states, actions and edges of a definition
  help       Show this help message
  version    Show version information

Examples:
  # Generate Go code
  fsmc generate machine.fsm --package parser --output machine_gen.go

  # Validate a definition
  fsmc validate machine.fsm

  # Inspect the compiled topology
  fsmc inspect machine.fsm

For command-specific help, run:
  fsmc <command> --help`)
}
