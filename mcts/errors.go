package mcts

import "github.com/pkg/errors"

// Sentinel errors, wrapped with context at each boundary that can
// produce them.
var (
	// ErrDegenerateRoot reports a root position with no legal actions.
	// Engine.Act returns it only when that root is not itself terminal
	// — an invalid game state ("actions empty while terminal is none");
	// a terminal root makes Act return no move and no error. The lower
	// level action and the Join of Think's handle return it for any
	// root without actions, terminal or not. It is reported rather than
	// asserted so a misbehaving Game fails loudly instead of
	// deadlocking a worker.
	ErrDegenerateRoot = errors.New("mcts: root position has no legal actions")

	// ErrNoCandidates is returned when the root policy finds nothing to
	// play even though the root had at least one legal action — this
	// should be unreachable, a propagated invariant violation rather
	// than a recoverable condition.
	ErrNoCandidates = errors.New("mcts: root policy produced no candidate move")

	// ErrNoRoots is returned by Combine when asked for zero or fewer
	// independent searches (n <= 0).
	ErrNoRoots = errors.New("mcts: combine requires at least one search")
)
