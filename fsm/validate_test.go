package fsm

import (
	"errors"
	"testing"

	"github.com/lesurp/state-machine/dsl"
)

func TestValidateOK(t *testing.T) {
	def, err := dsl.Parse(`W, A,
		S { X => T, Y => S },
		T { X => S },
	`)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(def); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateDuplicateAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"same edge twice", "W, A, S { X => T, X => U }"},
		{"duplicate inside alternatives", "W, A, S { X | X => T }"},
		{"duplicate across alternative lists", "W, A, S { X | Y => T, Y | Z => U }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def, err := dsl.Parse(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			err = Validate(def)
			var dup *DuplicateActionError
			if !errors.As(err, &dup) {
				t.Fatalf("Validate = %v, want DuplicateActionError", err)
			}
			if dup.State != "S" {
				t.Errorf("offending state = %q, want S", dup.State)
			}
			if !errors.Is(err, ErrDuplicateAction) {
				t.Error("error does not match ErrDuplicateAction")
			}
		})
	}
}

func TestValidateDuplicateActionNamesAction(t *testing.T) {
	def, err := dsl.Parse("W, A, S { X | Y => T, Y => U }")
	if err != nil {
		t.Fatal(err)
	}
	var dup *DuplicateActionError
	if !errors.As(Validate(def), &dup) {
		t.Fatal("expected DuplicateActionError")
	}
	if dup.Action != "Y" {
		t.Errorf("offending action = %q, want Y", dup.Action)
	}
}

func TestValidateRejectsDespiteValidEdges(t *testing.T) {
	// One conflict rejects the whole definition no matter how many other
	// edges are fine.
	def, err := dsl.Parse(`W, A,
		Good { X => Good, Y => Other },
		Other { X => Good },
		Bad { X => Good, X => Other },
	`)
	if err != nil {
		t.Fatal(err)
	}
	var dup *DuplicateActionError
	if !errors.As(Validate(def), &dup) {
		t.Fatal("expected DuplicateActionError")
	}
	if dup.State != "Bad" {
		t.Errorf("offending state = %q, want Bad", dup.State)
	}
}

func TestValidateDuplicateState(t *testing.T) {
	def, err := dsl.Parse("W, A, S { X => T }, S { Y => T }")
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(Validate(def), ErrDuplicateState) {
		t.Error("expected ErrDuplicateState")
	}
}

func TestValidateSharedSpelling(t *testing.T) {
	// States and actions are separate namespaces; one spelling may serve
	// both roles.
	def, err := dsl.Parse("W, A, Sign { Sign => Done }")
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(def); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
