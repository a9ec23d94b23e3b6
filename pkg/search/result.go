package search

import "github.com/six-chamber/roulette/pkg/engine"

// Result is the structured outcome of an extended search: the heuristic
// score of the position, and the predicted principal variation through
// decision nodes only, stopping at the first chance node.
type Result struct {
	Score     float64
	FollowUps []engine.Event
}

// prepend returns a copy of r with event pushed onto the front of
// FollowUps, used as a decision node's best child result is unwound back
// up the recursion.
func (r Result) prepend(event engine.Event) Result {
	followUps := make([]engine.Event, 0, len(r.FollowUps)+1)
	followUps = append(followUps, event)
	followUps = append(followUps, r.FollowUps...)
	return Result{Score: r.Score, FollowUps: followUps}
}
