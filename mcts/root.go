package mcts

import (
	"math/rand"
	"time"
)

// bestResult is what the root policy hands back to Engine: the chosen
// label(s) plus enough of the root's state for a caller to inspect the
// search outcome.
type bestResult[G comparable] struct {
	Candidates []Action[G] // the action(s) bestactions selected
	RootValue  Value       // root's current Maximizer-perspective value estimate
	Proven     bool        // true if RootValue is a proof (root collapsed to Terminal)
}

// bestactions reads the root and its children, and names the
// candidate move(s) the root policy prefers, before the single-vs-many
// / least-evil decision that follows.
func bestactions[G comparable](ctx *searchCtx[G], rootPos G, actions []Action[G]) bestResult[G] {
	root := ctx.table.get(rootPos, ctx.inert)

	switch r := root.(type) {
	case *TerminalNode[G]:
		return bestactionsTerminal(r, actions)
	case InertTerminalNode:
		// An inert root only arises when the search runs with inert
		// set (Params.Inert) on a terminal root position; treat it the
		// same as a proving Terminal for candidate selection.
		return bestactionsTerminal(&TerminalNode[G]{Value: r.Value}, actions)
	case *TrunkNode[G]:
		return bestactionsTrunk(ctx, r, rootPos, actions)
	case *BudNode[G]:
		// Deadline hit before the root ever finished expanding: fall back to the most-sampled done child, or,
		// with nothing sampled at all, every legal action goes to
		// least-evil.
		return bestactionsBud(r, actions)
	default:
		panic("mcts: unreachable node variant")
	}
}

func bestactionsTerminal[G comparable](r *TerminalNode[G], actions []Action[G]) bestResult[G] {
	if !r.HasWinner {
		// Collapsed via exhaustion (all children terminal): every
		// legal action is a terminal child; report every one listed in
		// r.Terminals, in action order. The children's own values are
		// not consulted, so children worse than r.Value are reported
		// too.
		out := make([]Action[G], 0, len(actions))
		for _, a := range actions {
			if containsPos(r.Terminals, a.Next) || a.Next == r.WinningMove {
				out = append(out, a)
			}
		}
		if len(out) == 0 {
			out = append([]Action[G]{}, actions...)
		}
		return bestResult[G]{Candidates: out, RootValue: r.Value, Proven: true}
	}

	for _, a := range actions {
		if a.Next == r.WinningMove {
			return bestResult[G]{Candidates: []Action[G]{a}, RootValue: r.Value, Proven: true}
		}
	}
	// WinningMove not among the current action set (shouldn't happen);
	// fall back to the full terminal set.
	out := make([]Action[G], 0, len(actions))
	for _, a := range actions {
		if containsPos(r.Terminals, a.Next) {
			out = append(out, a)
		}
	}
	return bestResult[G]{Candidates: out, RootValue: r.Value, Proven: true}
}

func bestactionsBud[G comparable](r *BudNode[G], actions []Action[G]) bestResult[G] {
	if len(r.Done) == 0 {
		return bestResult[G]{Candidates: append([]Action[G]{}, actions...)}
	}
	var best *budEntry[G]
	for i := range r.Done {
		e := &r.Done[i]
		if best == nil || e.Subsims > best.Subsims {
			best = e
		}
	}
	for _, a := range actions {
		if a.Next == best.Pos {
			return bestResult[G]{Candidates: []Action[G]{a}, RootValue: best.Wins / best.Subsims}
		}
	}
	return bestResult[G]{Candidates: append([]Action[G]{}, actions...)}
}

// bestactionsTrunk LCB-selects among moveq's entries, compares against
// the Trunk's proven worstcase, and falls back to the terminal set
// when worstcase already beats the best LCB move.
func bestactionsTrunk[G comparable](ctx *searchCtx[G], r *TrunkNode[G], rootPos G, actions []Action[G]) bestResult[G] {
	p := ctx.game.Player(rootPos)
	n := ctx.game.NumActions(rootPos)

	items := r.MoveQ.Items()
	var bestItem *PrioMove[G]
	var bestLCB Value
	for i := range items {
		it := &items[i]
		child := ctx.table.m[it.Pmove]
		m, ok := nodeMean(child)
		if !ok {
			m = 0
		}
		v := lcb(p, m, it.Subsims, n, ctx.params)
		if bestItem == nil || v > bestLCB {
			bestItem = it
			bestLCB = v
		}
	}

	if bestItem != nil && bestLCB > sign(p, r.Worstcase) {
		for _, a := range actions {
			if a.Next == bestItem.Pmove {
				mean, _ := nodeMean(ctx.table.m[bestItem.Pmove])
				return bestResult[G]{Candidates: []Action[G]{a}, RootValue: mean}
			}
		}
	}

	// Either worstcase already proves as good or better than the best
	// LCB move, or moveq was empty (every child already proven
	// terminal but the Trunk itself hasn't collapsed yet): delegate to
	// the full terminal set.
	out := make([]Action[G], 0, len(r.Terminals))
	for _, a := range actions {
		if containsPos(r.Terminals, a.Next) {
			out = append(out, a)
		}
	}
	if len(out) == 0 && bestItem != nil {
		for _, a := range actions {
			if a.Next == bestItem.Pmove {
				out = append(out, a)
			}
		}
	}
	return bestResult[G]{Candidates: out, RootValue: r.Worstcase}
}

func containsPos[G comparable](haystack []G, needle G) bool {
	for _, g := range haystack {
		if g == needle {
			return true
		}
	}
	return false
}

// action plays the sole candidate, or breaks a tie with the
// least-evil policy (a fresh inert-terminal search restricted to the
// tied labels).
func action[G comparable](game Game[G], table *NodeTable[G], params *Params, rootPos G, rng *rand.Rand) (Action[G], error) {
	actions := game.Actions(rootPos)
	if len(actions) == 0 {
		return Action[G]{}, ErrDegenerateRoot
	}
	if len(actions) == 1 {
		return actions[0], nil
	}

	ctx := &searchCtx[G]{game: game, table: table, params: params, rng: rng, inert: params.Inert}
	res := bestactions(ctx, rootPos, actions)
	if len(res.Candidates) == 0 {
		return Action[G]{}, ErrNoCandidates
	}
	if len(res.Candidates) == 1 {
		return res.Candidates[0], nil
	}
	return leastEvil(game, rootPos, res.Candidates, params, rng)
}

// leastEvil runs a fresh inert-terminal search restricted to the tied
// candidate labels and returns the slowest-losing (or, if one turns
// out not to lose after all, the best) among them. A single candidate
// is returned as is, without a search.
func leastEvil[G comparable](game Game[G], rootPos G, candidates []Action[G], params *Params, rng *rand.Rand) (Action[G], error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	inertParams := params.lessEvilParams()

	restricted := make(map[G]bool, len(candidates))
	for _, c := range candidates {
		restricted[c.Next] = true
	}
	restrictedGame := restrictedGame[G]{Game: game, root: rootPos, allowed: restricted}

	table := newNodeTable[G](restrictedGame, params.ExtraCache)
	ctx := &searchCtx[G]{game: restrictedGame, table: table, params: inertParams, rng: rng, inert: true}

	join := advanceUntil(ctx, rootPos)
	time.Sleep(inertParams.Duration)
	join()

	p := game.Player(rootPos)
	n := game.NumActions(rootPos)
	root := table.get(rootPos, true)

	if _, ok := root.(*TrunkNode[G]); !ok {
		// Search never finished expanding (tiny duration); fall back to
		// the first candidate in action order.
		return candidates[0], nil
	}

	var bestAction Action[G]
	found := false
	var bestLCB Value
	for _, c := range candidates {
		node, ok := table.m[c.Next]
		if !ok {
			continue
		}
		mean, ok := nodeMean(node)
		if !ok {
			continue
		}
		_, subsims, _ := nodeTotals(node)
		v := lcb(p, mean, subsims, n, inertParams)
		if !found || v > bestLCB {
			bestAction, bestLCB, found = c, v, true
		}
	}
	if !found {
		return candidates[0], nil
	}
	return bestAction, nil
}

// restrictedGame narrows a Game to the subtree under a fixed set of
// root-level children, used only by leastEvil so the inert search
// never wastes samples on moves that already lost the tie-break.
type restrictedGame[G comparable] struct {
	Game[G]
	root    G
	allowed map[G]bool
}

func (r restrictedGame[G]) Actions(pos G) []Action[G] {
	actions := r.Game.Actions(pos)
	if pos != r.root {
		return actions
	}
	out := make([]Action[G], 0, len(r.allowed))
	for _, a := range actions {
		if r.allowed[a.Next] {
			out = append(out, a)
		}
	}
	return out
}

func (r restrictedGame[G]) NumActions(pos G) int {
	if pos != r.root {
		return r.Game.NumActions(pos)
	}
	return len(r.Actions(pos))
}
