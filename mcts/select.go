package mcts

import "math/rand"

// searchCtx bundles everything a single search needs to thread through
// the recursive advanceState step, recomputed once per worker chunk
// (numRolls/numRollsSqrt scale with the root's current sims).
type searchCtx[G comparable] struct {
	game         Game[G]
	table        *NodeTable[G]
	params       *Params
	rng          *rand.Rand
	inert        bool
	numRolls     int
	numRollsSqrt Value
	listener     StatsListener[G]
}

// advanceState advances the subtree
// rooted at pos by exactly one step, mutating the node table in place
// and returning the Maximizer-perspective delta to backpropagate to
// whatever called it. uniform forces this call's own selection (if pos
// is a Trunk) to ignore exploitation entirely; every recursive call it
// makes passes uniform=false, since only the very first descent of a
// root-level call is affected.
func advanceState[G comparable](ctx *searchCtx[G], pos G, uniform bool) Value {
	node := ctx.table.get(pos, ctx.inert)
	delta, updated := advanceNode(ctx, pos, node, uniform)
	if updated != node {
		ctx.table.put(pos, updated)
	}
	return delta
}

func advanceNode[G comparable](ctx *searchCtx[G], pos G, node Node[G], uniform bool) (Value, Node[G]) {
	switch n := node.(type) {
	case InertTerminalNode:
		return n.Value * ctx.numRollsSqrt, n
	case *TerminalNode[G]:
		return n.Value * ctx.numRollsSqrt, n
	case *BudNode[G]:
		return advanceBud(ctx, pos, n)
	case *TrunkNode[G]:
		return advanceTrunk(ctx, pos, n, uniform)
	default:
		panic("mcts: unreachable node variant")
	}
}

// advanceBud samples the next pending child once (leafExpand), or,
// once nothing is pending, converts to a Trunk and redispatches.
func advanceBud[G comparable](ctx *searchCtx[G], pos G, bud *BudNode[G]) (Value, Node[G]) {
	if len(bud.Pending) == 0 {
		trunk := budToTrunk(ctx, pos, bud)
		return advanceNode(ctx, pos, trunk, false)
	}

	ngs := bud.Pending[0]
	w, subsims := leafExpand(ctx, ngs)

	if _, ok := ctx.table.m[ngs]; !ok {
		ctx.table.put(ngs, ctx.table.newNodeFor(ngs, ctx.inert))
	}

	done := make([]budEntry[G], len(bud.Done)+1)
	copy(done, bud.Done)
	done[len(bud.Done)] = budEntry[G]{Pos: ngs, Wins: w, Subsims: subsims}

	return w, &BudNode[G]{Done: done, Pending: bud.Pending[1:]}
}

// leafExpand performs ctx.numRolls rollouts from ngs and returns the
// (w, √numrolls) pair a Bud's Done entry stores: w is the summed
// rollout value normalized by √numrolls, so it combines uniformly with
// every other Done/MoveQ entry regardless of how many rollouts
// produced it (spec §4.C).
func leafExpand[G comparable](ctx *searchCtx[G], ngs G) (w, subsims Value) {
	raw := rollouts(ctx.game, ctx.numRolls, ngs, ctx.rng)
	return raw / ctx.numRollsSqrt, ctx.numRollsSqrt
}

// budToTrunk converts a fully-sampled Bud into a Trunk, seeding moveq
// from its Done entries.
func budToTrunk[G comparable](ctx *searchCtx[G], pos G, bud *BudNode[G]) *TrunkNode[G] {
	p := ctx.game.Player(pos)
	n := ctx.game.NumActions(pos)

	q := newPrioQueue[G](len(bud.Done))
	var sims, wins Value
	for _, e := range bud.Done {
		mean := e.Wins / e.Subsims
		q.PushMove(PrioMove[G]{
			Priority: ucbPriority(p, mean, e.Subsims, n, ctx.params, false),
			Subsims:  e.Subsims,
			Pmove:    e.Pos,
		})
		sims += e.Subsims
		wins += e.Wins
	}

	return &TrunkNode[G]{
		Sims:      sims,
		Wins:      wins,
		MoveQ:     q,
		Worstcase: playerBound(p.Opponent(), ctx.params.Alpha, ctx.params.Beta),
	}
}

// advanceTrunk extracts moveq's current best child, recurses into it,
// then either absorbs a proven terminal (possibly collapsing this
// whole Trunk) or reinserts the child with a refreshed priority.
func advanceTrunk[G comparable](ctx *searchCtx[G], pos G, trunk *TrunkNode[G], uniform bool) (Value, Node[G]) {
	p := ctx.game.Player(pos)
	n := ctx.game.NumActions(pos)

	pm := popSelection(trunk, p, n, ctx.params, uniform)
	d := advanceState(ctx, pm.Pmove, false)
	child := ctx.table.m[pm.Pmove]

	if term, ok := child.(*TerminalNode[G]); ok {
		if term.Value == playerBound(p, ctx.params.Alpha, ctx.params.Beta) {
			rest := make([]G, 0, len(trunk.Terminals)+trunk.MoveQ.Len())
			rest = append(rest, trunk.Terminals...)
			for _, it := range trunk.MoveQ.Items() {
				rest = append(rest, it.Pmove)
			}
			collapsed := &TerminalNode[G]{
				Value:       term.Value,
				HasWinner:   true,
				WinningMove: pm.Pmove,
				Terminals:   rest,
			}
			return term.Value * ctx.numRollsSqrt, collapsed
		}

		trunk.Terminals = append(trunk.Terminals, pm.Pmove)
		trunk.Worstcase = playerObjective(p, trunk.Worstcase, term.Value)
		if trunk.MoveQ.Len() == 0 {
			collapsed := &TerminalNode[G]{
				Value:     trunk.Worstcase,
				Terminals: append([]G{}, trunk.Terminals...),
			}
			return trunk.Worstcase * ctx.numRollsSqrt, collapsed
		}
	} else {
		mean, ok := nodeMean(child)
		if !ok {
			mean = 0
		}
		newSubsims := pm.Subsims + ctx.numRollsSqrt
		trunk.MoveQ.PushMove(PrioMove[G]{
			Priority: ucbPriority(p, mean, newSubsims, n, ctx.params, false),
			Subsims:  newSubsims,
			Pmove:    pm.Pmove,
		})
	}

	trunk.Sims += ctx.numRollsSqrt
	trunk.Wins += d
	return d, trunk
}

// popSelection removes the child this visit descends into. Normally
// that's simply the heap max; under a forced uniform (exploration-
// only) descent, c1 is zero so the mean term vanishes entirely and the
// comparison reduces to picking the least-visited child, which is done
// by a linear scan so the heap's stored priorities are left untouched.
func popSelection[G comparable](trunk *TrunkNode[G], p Player, n int, params *Params, uniform bool) PrioMove[G] {
	if !uniform {
		return trunk.MoveQ.PopMax()
	}
	items := trunk.MoveQ.Items()
	best := -1
	var bestVal Value
	for i, it := range items {
		// Unsigned (Maximizer) form: the bare exploration term, which
		// is largest for the least-visited child whichever side moves.
		v := ucbPriority(Maximizer, 0, it.Subsims, n, params, true)
		if best == -1 || v > bestVal {
			best, bestVal = i, v
		}
	}
	return trunk.MoveQ.RemoveAt(best)
}
