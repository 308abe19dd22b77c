package dsl

import (
	"errors"
	"reflect"
	"testing"
)

const floatDef = `
FloatParser,
Char,

ParseSign {
	Sign | Digit => ParseDigitsBeforeDot
},

ParseDigitsBeforeDot {
	Digit => ParseDigitsBeforeDot,
	Dot => ParseDigitsAfterDot,
	Eos => Finished,
},
`

func TestParse(t *testing.T) {
	def, err := Parse(floatDef)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if def.StateType != "FloatParser" {
		t.Errorf("StateType = %q, want FloatParser", def.StateType)
	}
	if def.ActionType != "Char" {
		t.Errorf("ActionType = %q, want Char", def.ActionType)
	}
	if len(def.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(def.Blocks))
	}

	sign := def.Blocks[0]
	if sign.State != "ParseSign" {
		t.Errorf("block 0 state = %q, want ParseSign", sign.State)
	}
	if len(sign.Edges) != 1 {
		t.Fatalf("ParseSign has %d edges, want 1", len(sign.Edges))
	}
	if !reflect.DeepEqual(sign.Edges[0].Actions, []string{"Sign", "Digit"}) {
		t.Errorf("actions = %v", sign.Edges[0].Actions)
	}
	if !reflect.DeepEqual(sign.Edges[0].Targets, []string{"ParseDigitsBeforeDot"}) {
		t.Errorf("targets = %v", sign.Edges[0].Targets)
	}

	before := def.Blocks[1]
	if len(before.Edges) != 3 {
		t.Errorf("ParseDigitsBeforeDot has %d edges, want 3", len(before.Edges))
	}
}

func TestParseMultipleTargets(t *testing.T) {
	def, err := Parse("W, A, S { Go => X | Y | Z }")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	targets := def.Blocks[0].Edges[0].Targets
	if !reflect.DeepEqual(targets, []string{"X", "Y", "Z"}) {
		t.Errorf("targets = %v, want [X Y Z]", targets)
	}
}

func TestParseEmptyBlock(t *testing.T) {
	def, err := Parse("W, A, S { }")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(def.Blocks[0].Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(def.Blocks[0].Edges))
	}
}

func TestParseNoBlocks(t *testing.T) {
	def, err := Parse("W, A,")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(def.Blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(def.Blocks))
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing state type comma", "W A, S { }"},
		{"missing action type", "W,"},
		{"missing brace", "W, A, S X => Y"},
		{"unterminated block", "W, A, S { X => Y"},
		{"missing arrow", "W, A, S { X Y }"},
		{"empty action alternatives", "W, A, S { => Y }"},
		{"empty target alternatives", "W, A, S { X => }"},
		{"dangling pipe", "W, A, S { X | => Y }"},
		{"missing edge separator", "W, A, S { X => Y Z => Q }"},
		{"missing block separator", "W, A, S { } T { }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tc.input)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q): error %v is not a SyntaxError", tc.input, err)
			}
		})
	}
}

func TestSyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse("W, A, S { X => }")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if syntaxErr.Token.Pos != 15 {
		t.Errorf("offending token at %d, want 15", syntaxErr.Token.Pos)
	}
}

func TestParseDeterministic(t *testing.T) {
	first, err := Parse(floatDef)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse(floatDef)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two parses of the same input differ")
	}
}

func TestStringRoundTrip(t *testing.T) {
	def, err := Parse(floatDef)
	if err != nil {
		t.Fatal(err)
	}
	reparsed, err := Parse(def.String())
	if err != nil {
		t.Fatalf("reparsing rendered DSL: %v", err)
	}
	if !reflect.DeepEqual(def, reparsed) {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", def, reparsed)
	}
}
