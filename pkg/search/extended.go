package search

import (
	"math"

	"github.com/six-chamber/roulette/pkg/engine"
)

// extended wraps base to additionally track the principal variation
// through decision nodes down to shallowDepth, then falls back to a
// scalar-only base search for deepDepth further plies: follow-ups are
// only useful near the root, and tracking them at full depth would cost
// memory for no benefit to the agent layer.
type extended struct {
	base        *base
	shallowLeft int
	deepDepth   int
}

func newExtended(b *base, shallowDepth, deepDepth int) *extended {
	return &extended{base: b, shallowLeft: shallowDepth, deepDepth: deepDepth}
}

func (e *extended) search(s engine.State, shallowLeft int, alpha, beta float64) (Result, error) {
	select {
	case <-e.base.ctx.Done():
		return Result{}, errTimeout
	default:
	}

	if e.base.machine.IsFinished(s) {
		return Result{Score: e.base.evaluator.Score(s)}, nil
	}
	if shallowLeft <= 0 {
		score, err := e.base.score(s, e.deepDepth, alpha, beta)
		if err != nil {
			return Result{}, err
		}
		return Result{Score: score}, nil
	}

	children, err := e.base.machine.GetChildStates(s)
	if err != nil {
		return Result{}, err
	}

	if engine.IsEvaluationPhase(s.NextEvent) {
		return e.searchDecision(s, children, shallowLeft, alpha, beta)
	}
	return e.searchChance(children, shallowLeft)
}

func (e *extended) searchDecision(s engine.State, children []engine.State, shallowLeft int, alpha, beta float64) (Result, error) {
	maximizing := s.NextEvent.IsPlayerTurn
	childShallow := shallowLeft
	if len(children) > 1 {
		childShallow = shallowLeft - 1
	}

	var best Result
	bestScore := math.Inf(1)
	if maximizing {
		bestScore = math.Inf(-1)
	}

	for _, child := range children {
		result, err := e.search(child, childShallow, alpha, beta)
		if err != nil {
			return Result{}, err
		}
		improved := false
		if maximizing && result.Score > bestScore {
			improved = true
		}
		if !maximizing && result.Score < bestScore {
			improved = true
		}
		if improved {
			bestScore = result.Score
			best = result
			// A deterministic single-child item (Cigarette/Saw/Handcuffs/
			// Inverter) hands straight back to a fresh Evaluating event;
			// that event carries no decision of its own, so it is never
			// part of the principal variation.
			if child.NextEvent.Action != engine.ActionEvaluating {
				best = best.prepend(child.NextEvent)
			}
		}
		if maximizing {
			if bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if bestScore < beta {
				beta = bestScore
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

func (e *extended) searchChance(children []engine.State, shallowLeft int) (Result, error) {
	childShallow := shallowLeft
	if len(children) > 1 {
		childShallow = shallowLeft - 1
	}
	var total float64
	for _, child := range children {
		result, err := e.search(child, childShallow, math.Inf(-1), math.Inf(1))
		if err != nil {
			return Result{}, err
		}
		total += child.Probability * result.Score
	}
	// A chance node is where follow-up tracking stops: the caller
	// cannot force a particular outcome, so there is no single
	// principal-variation event to report past this point.
	return Result{Score: total}, nil
}
