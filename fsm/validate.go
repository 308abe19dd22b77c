package fsm

import (
	"fmt"

	"github.com/lesurp/state-machine/dsl"
)

// Validate checks a definition for structural correctness: unique block ids
// and at most one edge per action within a block. States and actions are
// separate namespaces, so one spelling may serve both roles. Any violation
// rejects the whole definition; no partial artifact is produced.
func Validate(def *dsl.Definition) error {
	blockIDs := make(map[string]bool)

	for _, block := range def.Blocks {
		if blockIDs[block.State] {
			return fmt.Errorf("%w: %s", ErrDuplicateState, block.State)
		}
		blockIDs[block.State] = true

		if err := checkEdgeConsistency(block); err != nil {
			return err
		}
	}

	return nil
}

// checkEdgeConsistency compares the total count of action occurrences
// across a block's edges against the count of distinct actions. A mismatch
// means one action maps to two edges of the same state, which would need
// two dispatch arms for one action.
func checkEdgeConsistency(block *dsl.StateBlock) error {
	total := 0
	seen := make(map[string]bool)
	duplicate := ""

	for _, edge := range block.Edges {
		for _, a := range edge.Actions {
			total++
			if seen[a] && duplicate == "" {
				duplicate = a
			}
			seen[a] = true
		}
	}

	if total != len(seen) {
		return &DuplicateActionError{State: block.State, Action: duplicate}
	}
	return nil
}
