package mcts

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// StatsListener is an optional, zero-cost-when-unset observer invoked
// at every worker chunk boundary. It gives a caller a way to print
// live search progress without the core depending on any particular
// output mechanism.
type StatsListener[G comparable] func(SearchInfo[G])

// SearchInfo is the snapshot a StatsListener receives.
type SearchInfo[G comparable] struct {
	RootSims Value
	NumRolls int
	TreeSize int
}

// Engine is the facade: it owns a Game, a Params, and the carry-over
// cache from the previous move, and exposes Act/Think as a small
// wrapper over the bare search primitives.
type Engine[G comparable] struct {
	game     Game[G]
	params   *Params
	cache    MCCache[G]
	rng      *rand.Rand
	listener StatsListener[G]
}

// NewEngine builds an Engine with no carry-over cache, the way a fresh
// game start has no history to seed from.
func NewEngine[G comparable](game Game[G], params *Params) *Engine[G] {
	if params == nil {
		params = DefaultParams()
	}
	return &Engine[G]{
		game:   game,
		params: params,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetListener attaches a StatsListener; pass nil to detach.
func (e *Engine[G]) SetListener(l StatsListener[G]) { e.listener = l }

// Params returns the engine's current configuration.
func (e *Engine[G]) Params() *Params { return e.params }

// pendingSearch is the handle Think returns: a running background
// search plus everything needed to join it and read the result.
type pendingSearch[G comparable] struct {
	join    JoinFunc
	ctx     *searchCtx[G]
	rootPos G
}

// Join stops the background worker, waits for it, and returns the
// root policy's result.
func (p *pendingSearch[G]) Join() (bestResult[G], StopReason, error) {
	reason := p.join()
	actions := p.ctx.game.Actions(p.rootPos)
	if len(actions) == 0 {
		return bestResult[G]{}, reason, ErrDegenerateRoot
	}
	res := bestactions(p.ctx, p.rootPos, actions)
	if len(res.Candidates) == 0 {
		return bestResult[G]{}, reason, ErrNoCandidates
	}
	return res, reason, nil
}

// Think starts a background search from state without blocking,
// returning a handle the caller joins whenever it likes. If params.Background is false, the
// search has not actually started any goroutine; Join runs it
// synchronously on the calling goroutine.
func (e *Engine[G]) Think(state G) *pendingSearch[G] {
	table := newNodeTable[G](e.game, len(e.cache)+e.params.ExtraCache)
	table.seed(e.cache)

	ctx := &searchCtx[G]{
		game:     e.game,
		table:    table,
		params:   e.params,
		rng:      e.rng,
		inert:    e.params.Inert,
		listener: e.listener,
	}
	return &pendingSearch[G]{join: advanceUntil(ctx, state), ctx: ctx, rootPos: state}
}

// Act drives one full move: starts the search, waits for it to settle
// (a timed sleep then an explicit stop signal when Background is set,
// or nothing, letting Join itself run and self-time the search when it
// is not), and applies the root policy, including the least-evil
// fallback.
// It returns the chosen label and the Engine advanced to the
// resulting position, with its carry-over cache filtered by the
// played action's predicate.
func (e *Engine[G]) Act(state G) (string, *Engine[G], error) {
	actions := e.game.Actions(state)
	if len(actions) == 0 {
		if _, ok := e.game.Terminal(state); ok {
			// A terminal root plays no move.
			return "", e, nil
		}
		return "", e, errors.Wrap(ErrDegenerateRoot, "Engine.Act")
	}
	if len(actions) == 1 {
		return actions[0].Label, e.next(), nil
	}

	pending := e.Think(state)
	if e.params.Background {
		time.Sleep(e.params.Duration)
	}
	pending.join()

	chosen, err := action(e.game, pending.ctx.table, e.params, state, e.rng)
	if err != nil {
		return "", e, errors.Wrap(err, "Engine.Act")
	}

	next := e.next()
	next.cache = filterForLabel(pending.ctx.table.snapshot(), chosen.Label, e.game.ActionFilters(state))
	return chosen.Label, next, nil
}

// next returns a copy of the Engine with a fresh carry-over cache
// (empty, until Act fills it in); the Engine itself holds no position,
// so there is nothing else to advance.
func (e *Engine[G]) next() *Engine[G] {
	clone := *e
	clone.cache = nil
	return &clone
}

// Combine runs n independent searches from the same root with
// disjoint RNGs and node tables, then aggregates by summing each
// move's wins/sims across roots before applying the LCB selector.
// This is the sanctioned parallelism variant; it does not do
// virtual-loss tree-parallel descent.
func Combine[G comparable](game Game[G], params *Params, state G, n int) (string, error) {
	if n <= 0 {
		return "", ErrNoRoots
	}

	type rootResult struct {
		table *NodeTable[G]
	}
	results := make([]rootResult, n)
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)*1000003))
			table := newNodeTable[G](game, params.ExtraCache)
			ctx := &searchCtx[G]{game: game, table: table, params: params, rng: rng, inert: params.Inert}
			join := advanceUntil(ctx, state)
			time.Sleep(params.Duration)
			join()
			results[i] = rootResult{table: table}
			done <- i
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}

	actions := game.Actions(state)
	if len(actions) == 0 {
		return "", ErrDegenerateRoot
	}
	if len(actions) == 1 {
		return actions[0].Label, nil
	}

	p := game.Player(state)
	numActions := game.NumActions(state)

	type agg struct {
		wins, sims Value
	}
	sums := make(map[G]*agg, len(actions))
	for _, a := range actions {
		sums[a.Next] = &agg{}
	}

	for _, r := range results {
		for pos, a := range sums {
			node, ok := r.table.m[pos]
			if !ok {
				continue
			}
			wins, sims, ok := nodeTotals(node)
			if !ok {
				continue
			}
			a.wins += wins
			a.sims += sims
		}
	}

	var best Action[G]
	found := false
	var bestLCB Value
	for _, a := range actions {
		agg := sums[a.Next]
		if agg.sims == 0 {
			continue
		}
		mean := agg.wins / agg.sims
		v := lcb(p, mean, agg.sims, numActions, params)
		if !found || v > bestLCB {
			best, bestLCB, found = a, v, true
		}
	}
	if !found {
		return actions[0].Label, nil
	}
	return best.Label, nil
}
