// Package agent maps search results (and, for the baseline, plain chance)
// onto a choice of successor state at each decision point.
package agent

import "github.com/six-chamber/roulette/pkg/engine"

// Agent selects one child of state to transition to. Implementations may
// hold a predicted line or other state across calls, which Confirm and
// Reset manage: GetSuccessor does not advance that line on its own, so a
// caller can inspect its choice before deciding whether to act on it. A
// prediction miss is the exception: it discards the cached line.
type Agent interface {
	// GetSuccessor returns which of children to move to from state.
	GetSuccessor(state engine.State, children []engine.State) (engine.State, error)
	// Confirm commits the successor most recently returned by
	// GetSuccessor, letting the agent advance any cached line.
	Confirm()
	// Reset discards any cached line, forcing the next GetSuccessor call
	// to start fresh.
	Reset()
}
