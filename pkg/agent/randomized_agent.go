package agent

import (
	"math/rand"

	"github.com/six-chamber/roulette/pkg/engine"
)

// RandomizedAgent picks uniformly among the offered children, ignoring
// state entirely. It exists as a test double and a baseline opponent for
// search regression tests, not as a serious playing strategy.
type RandomizedAgent struct {
	rng *rand.Rand
}

// NewRandomizedAgent builds a RandomizedAgent seeded from rng. A nil rng
// falls back to a fresh source with the fixed seed 1.
func NewRandomizedAgent(rng *rand.Rand) *RandomizedAgent {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RandomizedAgent{rng: rng}
}

// GetSuccessor returns a uniformly random child, or a PredictionMissError
// when children is empty.
func (a *RandomizedAgent) GetSuccessor(_ engine.State, children []engine.State) (engine.State, error) {
	if len(children) == 0 {
		return engine.State{}, &PredictionMissError{}
	}
	return children[a.rng.Intn(len(children))], nil
}

// Confirm is a no-op: RandomizedAgent carries no line to advance.
func (a *RandomizedAgent) Confirm() {}

// Reset is a no-op: RandomizedAgent carries no cached state.
func (a *RandomizedAgent) Reset() {}
