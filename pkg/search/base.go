package search

import (
	"context"
	"math"

	"github.com/six-chamber/roulette/pkg/engine"
)

// base carries everything one recursive expectiminimax walk needs: the
// rules, the heuristic, a private cache (workers each get their own to
// avoid lock contention on the hot path), and the cancellation signal for
// the wall-clock timeout.
type base struct {
	machine   *engine.StateMachine
	evaluator engine.Evaluator
	cache     *transpositionCache
	ctx       context.Context
}

// score runs plain alpha-beta expectiminimax down to depth plies or a
// terminal/cache hit, returning the heuristic value from the player's
// perspective. It is the deep-phase workhorse once the extended layer has
// stopped tracking follow-ups.
func (b *base) score(s engine.State, depth int, alpha, beta float64) (float64, error) {
	select {
	case <-b.ctx.Done():
		return 0, errTimeout
	default:
	}

	if b.machine.IsFinished(s) {
		return b.evaluator.Score(s), nil
	}
	if depth <= 0 {
		return b.evaluator.Score(s), nil
	}

	key := s.Key()
	if cached, ok := b.cache.lookup(key, depth); ok {
		return cached, nil
	}

	children, err := b.machine.GetChildStates(s)
	if err != nil {
		return 0, err
	}

	var result float64
	if engine.IsEvaluationPhase(s.NextEvent) {
		result, err = b.scoreDecision(s, children, depth, alpha, beta)
	} else {
		result, err = b.scoreChance(children, depth)
	}
	if err != nil {
		return 0, err
	}

	// A decision value on or outside the (alpha, beta) window is only a
	// bound left by a cutoff; memoizing it as exact would let a later hit
	// return a different score than a fresh search would.
	if !engine.IsEvaluationPhase(s.NextEvent) || (result > alpha && result < beta) {
		b.cache.store(key, result, depth)
	}
	return result, nil
}

// nextDepth implements the single-child shortcut: a forced line does not
// consume depth budget, since it represents no real branching choice.
func nextDepth(depth int, childCount int) int {
	if childCount == 1 {
		return depth
	}
	return depth - 1
}

func (b *base) scoreDecision(s engine.State, children []engine.State, depth int, alpha, beta float64) (float64, error) {
	maximizing := s.NextEvent.IsPlayerTurn
	childDepth := nextDepth(depth, len(children))

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	for _, child := range children {
		value, err := b.score(child, childDepth, alpha, beta)
		if err != nil {
			return 0, err
		}
		if maximizing {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// scoreChance takes the full probability-weighted expectation over
// children with no pruning: star-minimax-style chance pruning is
// deliberately not applied, per the reference design.
func (b *base) scoreChance(children []engine.State, depth int) (float64, error) {
	childDepth := nextDepth(depth, len(children))
	var total float64
	for _, child := range children {
		value, err := b.score(child, childDepth, math.Inf(-1), math.Inf(1))
		if err != nil {
			return 0, err
		}
		total += child.Probability * value
	}
	return total, nil
}
