// Package randomizer defines the boundary between the decision core and
// whatever resolves a chance node into a single concrete successor. No
// concrete implementation lives here: sampling real randomness, or
// replaying recorded input, is the driver's concern, not the core's.
package randomizer

import "github.com/six-chamber/roulette/pkg/engine"

// Randomizer picks one concrete successor from a chance node's children.
// Implementations are expected to weight their choice by each child's
// engine.State.Probability, but the interface does not mandate how.
type Randomizer interface {
	// GetSuccessor chooses one of children, all produced by the same
	// call to the state machine's GetChildStates.
	GetSuccessor(children []engine.State) (engine.State, error)

	// GetHiddenKnowledgeSuccessor resolves a chance node where the
	// acting side observes the outcome but the other side must not: it
	// must not leak the drawn colour into the other side's knowledge
	// flags beyond what the state machine already encoded in each
	// child. isPhone distinguishes the phone's multi-slot branch set
	// (where only possible-knowledge, not certain knowledge, should be
	// inferred by the non-acting side) from a single-slot peek.
	GetHiddenKnowledgeSuccessor(current engine.State, children []engine.State, isPhone bool) (engine.State, error)

	// SetSeed fixes the randomizer's internal source for reproducible
	// play, e.g. in tests or replay tooling.
	SetSeed(seed uint32)
}
