package agent

import (
	"context"

	"github.com/decred/slog"

	"github.com/six-chamber/roulette/pkg/engine"
	"github.com/six-chamber/roulette/pkg/search"
)

// SearchAgent is the intelligent Agent: it runs expectiminimax through a
// search.Engine and caches the predicted follow-up line so consecutive
// calls along an already-searched principal variation skip straight to a
// lookup instead of re-searching.
type SearchAgent struct {
	engine  *search.Engine
	machine *engine.StateMachine
	log     slog.Logger

	followUps []engine.Event // committed line, advanced by Confirm
	pending   []engine.Event // what followUps becomes if Confirm is called
}

// NewSearchAgent builds a SearchAgent around an existing search.Engine and
// the StateMachine it was configured against.
func NewSearchAgent(eng *search.Engine, machine *engine.StateMachine, log slog.Logger) *SearchAgent {
	if log == nil {
		log = slog.Disabled
	}
	return &SearchAgent{engine: eng, machine: machine, log: log}
}

// GetSuccessor returns the child of state the current predicted line (or
// a fresh search, if none applies) picks. The match against children is
// by Event equality, not identity, since children is freshly enumerated
// by the caller and may not be the same slice a prior search saw.
func (a *SearchAgent) GetSuccessor(state engine.State, children []engine.State) (engine.State, error) {
	followUps := a.followUps
	if len(followUps) == 0 || followUps[0].IsPlayerTurn != state.NextEvent.IsPlayerTurn {
		result, err := a.freshSearch(state)
		if err != nil {
			return engine.State{}, err
		}
		if len(result.FollowUps) == 0 {
			return engine.State{}, &PredictionMissError{Expected: state.NextEvent}
		}
		followUps = result.FollowUps
		a.log.Debugf("agent: searched fresh line of %d follow-up(s), score=%v", len(followUps), result.Score)
	} else {
		a.log.Debugf("agent: reusing cached line, %d follow-up(s) remaining", len(followUps))
	}

	expected := followUps[0]
	for _, child := range children {
		if child.NextEvent.Equal(expected) {
			a.pending = followUps[1:]
			return child, nil
		}
	}

	a.log.Warnf("agent: prediction miss, expected %+v not offered", expected)
	a.followUps = nil
	a.pending = nil
	return engine.State{}, &PredictionMissError{Expected: expected}
}

// Confirm commits the successor most recently returned by GetSuccessor.
func (a *SearchAgent) Confirm() {
	a.followUps = a.pending
	a.pending = nil
}

// Reset discards the cached line, forcing the next GetSuccessor call to
// search from scratch.
func (a *SearchAgent) Reset() {
	a.followUps = nil
	a.pending = nil
}

// freshSearch runs a full search rooted at state, with deepDepth set to
// the wider of the state's own ply bound and one past the engine's
// shallow-tracking depth.
func (a *SearchAgent) freshSearch(state engine.State) (search.Result, error) {
	deepDepth := a.machine.GetMaxDepth(state)
	if shallow := a.engine.ShallowDepth(); deepDepth < shallow+1 {
		deepDepth = shallow + 1
	}
	return a.engine.Search(context.Background(), state, deepDepth)
}
