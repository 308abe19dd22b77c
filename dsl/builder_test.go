package dsl

import (
	"reflect"
	"testing"
)

func TestBuilder(t *testing.T) {
	def := Build("FloatParser", "Char").
		State("ParseSign").
		On("Sign", "Digit").To("ParseDigitsBeforeDot").
		State("ParseDigitsBeforeDot").
		On("Digit").To("ParseDigitsBeforeDot").
		On("Dot").To("ParseDigitsAfterDot").
		On("Eos").To("Finished").
		AST()

	parsed, err := Parse(floatDef)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(def, parsed) {
		t.Errorf("builder AST differs from parsed AST:\n%s\nvs\n%s", def, parsed)
	}
}

func TestBuilderString(t *testing.T) {
	text := Build("W", "A").
		State("S").On("X", "Y").To("T", "U").
		String()

	def, err := Parse(text)
	if err != nil {
		t.Fatalf("rendered DSL does not parse: %v\n%s", err, text)
	}
	edge := def.Blocks[0].Edges[0]
	if !reflect.DeepEqual(edge.Actions, []string{"X", "Y"}) {
		t.Errorf("actions = %v", edge.Actions)
	}
	if !reflect.DeepEqual(edge.Targets, []string{"T", "U"}) {
		t.Errorf("targets = %v", edge.Targets)
	}
}

func TestBuilderOnWithoutState(t *testing.T) {
	// Modifier calls without a current element are ignored, not panics.
	def := Build("W", "A").On("X").To("Y").AST()
	if len(def.Blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(def.Blocks))
	}
}
