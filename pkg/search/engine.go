// Package search implements expectiminimax over engine.State: a plain
// alpha-beta base, a transposition-cache layer keyed on engine.StateKey, an
// iterative-deepening driver, a follow-up-tracking extended layer, and a
// threaded layer that fans the root's children out across goroutines under
// a wall-clock budget.
package search

import (
	"context"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"
	"github.com/prometheus/procfs"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/six-chamber/roulette/pkg/engine"
)

// Config tunes one Engine.
type Config struct {
	ShallowDepth  int
	TimeLimit     time.Duration
	CacheCapacity int
	Workers       int64
	Log           slog.Logger
}

// Engine runs expectiminimax searches over a fixed rule set and heuristic.
type Engine struct {
	machine   *engine.StateMachine
	evaluator engine.Evaluator
	cfg       Config
	log       slog.Logger
}

// New builds an Engine. deepDepth passed to Search defaults to
// machine.GetMaxDepth(state) when callers pass 0.
func New(machine *engine.StateMachine, evaluator engine.Evaluator, cfg Config) *Engine {
	if cfg.Log == nil {
		cfg.Log = slog.Disabled
	}
	if cfg.ShallowDepth <= 0 {
		cfg.ShallowDepth = 3
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = 30 * time.Second
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Engine{machine: machine, evaluator: evaluator, cfg: cfg, log: cfg.Log}
}

// ShallowDepth reports the follow-up-tracking depth this Engine was
// configured with, letting callers (e.g. the agent layer) compute a
// deepDepth consistent with it without duplicating the default.
func (e *Engine) ShallowDepth() int {
	return e.cfg.ShallowDepth
}

// Search runs the full pipeline at the root: children of state are fanned
// out one per goroutine (bounded by cfg.Workers), each exploring its own
// subtree with iterative deepening and its own transposition cache, then
// combined deterministically in enumeration order once every worker
// finishes or the wall-clock deadline fires. deepDepth, if zero, defaults
// to the state machine's own bound for the state.
func (e *Engine) Search(ctx context.Context, state engine.State, deepDepth int) (Result, error) {
	runID := uuid.New()
	log := e.log

	if deepDepth <= 0 {
		deepDepth = e.machine.GetMaxDepth(state)
	}
	if deepDepth < e.cfg.ShallowDepth+1 {
		deepDepth = e.cfg.ShallowDepth + 1
	}

	if e.machine.IsFinished(state) {
		return Result{Score: e.evaluator.Score(state)}, nil
	}

	children, err := e.machine.GetChildStates(state)
	if err != nil {
		return Result{}, err
	}

	deadlineCtx, cancel := context.WithTimeout(ctx, e.cfg.TimeLimit)
	defer cancel()

	log.Debugf("search %s: root has %d children, shallow=%d deep=%d limit=%s",
		runID, len(children), e.cfg.ShallowDepth, deepDepth, e.cfg.TimeLimit)

	stopPolling := make(chan struct{})
	defer close(stopPolling)
	go pollResourceUsage(deadlineCtx, stopPolling, log, runID.String())

	results := make([]Result, len(children))
	sem := semaphore.NewWeighted(e.cfg.Workers)
	g, gctx := errgroup.WithContext(deadlineCtx)

	for i, child := range children {
		i, child := i, child
		if err := sem.Acquire(gctx, 1); err != nil {
			// The deadline already fired before this child got a
			// worker; score it with the plain heuristic rather than
			// leaving its result as an artificial zero, which could
			// otherwise look better than every real search result.
			results[i] = Result{Score: e.evaluator.Score(child)}
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)
			b := &base{
				machine:   e.machine,
				evaluator: e.evaluator,
				cache:     newTranspositionCache(e.cfg.CacheCapacity),
				ctx:       deadlineCtx,
			}
			result, err := iterativeDeepen(deadlineCtx, b, child, e.cfg.ShallowDepth, deepDepth, log)
			if err != nil {
				return err
			}
			// A deterministic single-child item resolution (root itself
			// pending e.g. UseItem Saw) hands straight back to a fresh
			// Evaluating event, which is never part of the principal
			// variation; see extended.go's searchDecision for the same
			// guard.
			if child.NextEvent.Action == engine.ActionEvaluating {
				results[i] = result
			} else {
				results[i] = result.prepend(child.NextEvent)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := combineRootResults(state, children, results)
	log.Debugf("search %s: done, score=%v", runID, best.Score)
	return best, nil
}

// combineRootResults reduces the per-child results exactly as a
// single-threaded decision or chance node would: maximize/minimize in
// enumeration order for a decision root, or take the probability-weighted
// expectation for a chance root. Either reduction is commutative, so
// running the children out of order across goroutines never changes the
// outcome.
func combineRootResults(root engine.State, children []engine.State, results []Result) Result {
	if !engine.IsEvaluationPhase(root.NextEvent) {
		var total float64
		for i, child := range children {
			total += child.Probability * results[i].Score
		}
		return Result{Score: total}
	}

	maximizing := root.NextEvent.IsPlayerTurn
	var best Result
	haveBest := false
	for i := range children {
		r := results[i]
		if !haveBest || (maximizing && r.Score > best.Score) || (!maximizing && r.Score < best.Score) {
			best = r
			haveBest = true
		}
	}
	return best
}

// pollResourceUsage samples this process's own CPU ticks at up to 1-second
// granularity while a search is in flight, purely for diagnostics: it is
// never on the correctness path, and any error (e.g. no /proc on this
// platform) is swallowed.
func pollResourceUsage(ctx context.Context, stop <-chan struct{}, log slog.Logger, runID string) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			proc, err := fs.Self()
			if err != nil {
				continue
			}
			stat, err := proc.Stat()
			if err != nil {
				continue
			}
			log.Debugf("search %s: cpu_ticks=%d threads=%d", runID, stat.UTime+stat.STime, stat.NumThreads)
		}
	}
}
