// Package codegen emits Go source for a compiled state machine definition:
// one payload-carrying variant type per collected state and action id,
// conversion helpers, kind constants, and a constructor that bakes the
// declared topology into a transition table.
package codegen

import (
	"fmt"
	"strings"

	"github.com/lesurp/state-machine/dsl"
	"github.com/lesurp/state-machine/fsm"
)

// GenerateGo generates Go source implementing the definition's variant sets
// and dispatch wiring. The definition is validated first; nothing is emitted
// for an invalid definition. Output is deterministic: variants appear in
// first-declaration order.
func GenerateGo(def *dsl.Definition, packageName string) (string, error) {
	if err := fsm.Validate(def); err != nil {
		return "", err
	}
	symbols := fsm.CollectSymbols(def)

	var b strings.Builder

	b.WriteString(fmt.Sprintf("// Code generated from the %s state machine definition. DO NOT EDIT.\n", def.StateType))
	b.WriteString(fmt.Sprintf("package %s\n\n", packageName))

	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/lesurp/state-machine/dsl\"\n")
	b.WriteString("\t\"github.com/lesurp/state-machine/fsm\"\n")
	b.WriteString(")\n\n")

	// Kind constants
	b.WriteString(fmt.Sprintf("// %s state variant kinds.\n", def.StateType))
	b.WriteString("const (\n")
	for _, s := range symbols.States {
		b.WriteString(fmt.Sprintf("\tState%s = %q\n", s, s))
	}
	b.WriteString(")\n\n")

	b.WriteString(fmt.Sprintf("// %s action variant kinds.\n", def.ActionType))
	b.WriteString("const (\n")
	for _, a := range symbols.Actions {
		b.WriteString(fmt.Sprintf("\tAction%s = %q\n", a, a))
	}
	b.WriteString(")\n\n")

	// State variants
	for _, s := range symbols.States {
		b.WriteString(fmt.Sprintf("// %s is the %s variant of %s.\n", s, s, def.StateType))
		b.WriteString(fmt.Sprintf("type %s struct{ Payload any }\n\n", s))
		b.WriteString(fmt.Sprintf("func (s %s) StateKind() string { return State%s }\n\n", s, s))
		b.WriteString(fmt.Sprintf("// New%s wraps a payload in the %s variant.\n", s, s))
		b.WriteString(fmt.Sprintf("func New%s(payload any) %s { return %s{Payload: payload} }\n\n", s, s, s))
	}

	// Action variants. A spelling shared with a state reuses the state's
	// type and gains the action marker on top.
	for _, a := range symbols.Actions {
		if symbols.HasState(a) {
			b.WriteString(fmt.Sprintf("func (a %s) ActionKind() string { return Action%s }\n\n", a, a))
			continue
		}
		b.WriteString(fmt.Sprintf("// %s is the %s variant of %s.\n", a, a, def.ActionType))
		b.WriteString(fmt.Sprintf("type %s struct{ Payload any }\n\n", a))
		b.WriteString(fmt.Sprintf("func (a %s) ActionKind() string { return Action%s }\n\n", a, a))
		b.WriteString(fmt.Sprintf("// New%s wraps a payload in the %s variant.\n", a, a))
		b.WriteString(fmt.Sprintf("func New%s(payload any) %s { return %s{Payload: payload} }\n\n", a, a, a))
	}

	// Topology constructor
	b.WriteString(fmt.Sprintf("// New%s compiles the declared topology. Register one handler per\n", def.StateType))
	b.WriteString("// declared edge, then call Ready before dispatching.\n")
	b.WriteString(fmt.Sprintf("func New%s() (*fsm.Machine, error) {\n", def.StateType))
	b.WriteString("\tdef := &dsl.Definition{\n")
	b.WriteString(fmt.Sprintf("\t\tStateType:  %q,\n", def.StateType))
	b.WriteString(fmt.Sprintf("\t\tActionType: %q,\n", def.ActionType))
	b.WriteString("\t\tBlocks: []*dsl.StateBlock{\n")
	for _, block := range def.Blocks {
		b.WriteString(fmt.Sprintf("\t\t\t{State: %q, Edges: []*dsl.TransitionEdge{\n", block.State))
		for _, edge := range block.Edges {
			b.WriteString(fmt.Sprintf("\t\t\t\t{Actions: []string{%s}, Targets: []string{%s}},\n",
				quoteList(edge.Actions), quoteList(edge.Targets)))
		}
		b.WriteString("\t\t\t}},\n")
	}
	b.WriteString("\t\t},\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn fsm.Compile(def)\n")
	b.WriteString("}\n")

	return b.String(), nil
}

// GenerateGoFromDSL parses definition text and generates Go code.
func GenerateGoFromDSL(input string, packageName string) (string, error) {
	def, err := dsl.Parse(input)
	if err != nil {
		return "", err
	}
	return GenerateGo(def, packageName)
}

func quoteList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return strings.Join(quoted, ", ")
}
