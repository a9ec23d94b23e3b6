package agent

import (
	"fmt"

	"github.com/six-chamber/roulette/pkg/engine"
)

// PredictionMissError reports that the agent's cached follow-up event did
// not match any child actually offered at this decision point: play
// diverged from the principal variation the last search committed to.
// Recovery is to clear the cache and search again.
type PredictionMissError struct {
	Expected engine.Event
}

func (e *PredictionMissError) Error() string {
	return fmt.Sprintf("agent: predicted event %+v not among offered children", e.Expected)
}
