package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/lesurp/state-machine/fsm"
)

const trafficDef = `TrafficLight, Signal,
	Red { Go => Green },
	Green { Caution => Yellow },
	Yellow { Stop => Red },
`

func TestGenerateGo(t *testing.T) {
	out, err := GenerateGoFromDSL(trafficDef, "traffic")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"package traffic\n",
		"// Code generated from the TrafficLight state machine definition. DO NOT EDIT.",
		`StateRed = "Red"`,
		`StateGreen = "Green"`,
		`StateYellow = "Yellow"`,
		`ActionGo = "Go"`,
		"type Red struct{ Payload any }",
		"func (s Red) StateKind() string { return StateRed }",
		"func NewRed(payload any) Red { return Red{Payload: payload} }",
		"type Go struct{ Payload any }",
		"func (a Go) ActionKind() string { return ActionGo }",
		"func NewTrafficLight() (*fsm.Machine, error) {",
		`{Actions: []string{"Go"}, Targets: []string{"Green"}},`,
		"return fsm.Compile(def)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateGoDeclarationOrder(t *testing.T) {
	out, err := GenerateGoFromDSL(trafficDef, "traffic")
	if err != nil {
		t.Fatal(err)
	}
	red := strings.Index(out, "type Red struct")
	green := strings.Index(out, "type Green struct")
	yellow := strings.Index(out, "type Yellow struct")
	if red < 0 || green < 0 || yellow < 0 {
		t.Fatal("missing variant types")
	}
	if !(red < green && green < yellow) {
		t.Errorf("variants out of declaration order: Red@%d Green@%d Yellow@%d", red, green, yellow)
	}
}

func TestGenerateGoDeterministic(t *testing.T) {
	first, err := GenerateGoFromDSL(trafficDef, "traffic")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		out, err := GenerateGoFromDSL(trafficDef, "traffic")
		if err != nil {
			t.Fatal(err)
		}
		if out != first {
			t.Fatalf("iteration %d produced different output", i)
		}
	}
}

func TestGenerateGoInvalidDefinition(t *testing.T) {
	out, err := GenerateGoFromDSL("W, A, S { X => T, X => U }", "pkg")
	if !errors.Is(err, fsm.ErrDuplicateAction) {
		t.Errorf("err = %v, want ErrDuplicateAction", err)
	}
	if out != "" {
		t.Error("invalid definition emitted partial output")
	}
}

func TestGenerateGoSyntaxError(t *testing.T) {
	if _, err := GenerateGoFromDSL("W, A, S {", "pkg"); err == nil {
		t.Error("expected parse error")
	}
}

func TestGenerateGoSharedSpelling(t *testing.T) {
	// "Sign" is both a state and an action: one type, both marker methods.
	out, err := GenerateGoFromDSL("Parser, Token, Sign { Sign | Digit => Done }", "parser")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "type Sign struct") != 1 {
		t.Errorf("want exactly one Sign type:\n%s", out)
	}
	if !strings.Contains(out, "func (s Sign) StateKind() string { return StateSign }") {
		t.Error("Sign lacks the state marker")
	}
	if !strings.Contains(out, "func (a Sign) ActionKind() string { return ActionSign }") {
		t.Error("Sign lacks the action marker")
	}
	if strings.Count(out, "type Digit struct") != 1 {
		t.Error("want a dedicated Digit action type")
	}
}
