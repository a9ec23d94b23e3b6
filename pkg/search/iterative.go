package search

import (
	"context"
	"math"

	"github.com/decred/slog"

	"github.com/six-chamber/roulette/pkg/engine"
)

// iterativeDeepen runs extended searches at increasing shallow depths,
// starting from 1 ply and stopping once shallowDepth is reached, returning
// the best result that finished before ctx's deadline fired. The search at
// depth d is never wasted work if d+1 times out midway: its result is
// exactly what the caller gets back.
func iterativeDeepen(ctx context.Context, b *base, s engine.State, shallowDepth, deepDepth int, log slog.Logger) (Result, error) {
	var best Result
	haveResult := false

	for depth := 1; depth <= shallowDepth; depth++ {
		ext := newExtended(b, depth, deepDepth)
		result, err := ext.search(s, depth, math.Inf(-1), math.Inf(1))
		if err != nil {
			if err == errTimeout {
				log.Debugf("iterative deepening stopped at depth %d: time limit reached", depth)
				break
			}
			return Result{}, err
		}
		best = result
		haveResult = true
		log.Debugf("iterative deepening completed depth %d: score=%v follow_ups=%d", depth, result.Score, len(result.FollowUps))
	}

	if !haveResult {
		// The very first, shallowest depth timed out before
		// completing: fall back to a pure heuristic evaluation so the
		// caller always gets a usable result.
		return Result{Score: b.evaluator.Score(s)}, nil
	}
	return best, nil
}
