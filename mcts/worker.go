package mcts

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// StopReason names why a search's background worker returned. There is
// no node/depth cap here; budgets are only duration and sim count.
type StopReason int

const (
	StopUnknown StopReason = iota
	StopSignaled
	StopTerminalRoot
	StopSimCap
	StopDeadline
)

func (r StopReason) String() string {
	switch r {
	case StopSignaled:
		return "signaled"
	case StopTerminalRoot:
		return "terminal-root"
	case StopSimCap:
		return "sim-cap"
	case StopDeadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// JoinFunc stops a background search and blocks until its worker
// goroutine has returned. Safe to call more than once or from more
// than one goroutine; only the first call does any work.
type JoinFunc func() StopReason

// advanceUntil launches the background worker that repeatedly calls
// advanceState until it is signaled to stop, the root is proven
// terminal, the simulation cap is reached, or params.Duration elapses.
// If params.Background is false, no goroutine is started: the returned
// JoinFunc runs the same loop synchronously on the calling goroutine
// when invoked, timing its own deadline from that moment rather than
// from whenever advanceUntil was called.
func advanceUntil[G comparable](ctx *searchCtx[G], rootPos G) JoinFunc {
	var stop atomic.Bool
	var reason atomic.Int32
	var once sync.Once

	run := func() {
		deadline := time.Now().Add(ctx.params.Duration)
		reason.Store(int32(searchOnce(ctx, rootPos, &stop, deadline)))
	}

	if !ctx.params.Background {
		return func() StopReason {
			once.Do(run)
			return StopReason(reason.Load())
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		run()
	}()

	return func() StopReason {
		once.Do(func() {
			stop.Store(true)
		})
		<-done
		return StopReason(reason.Load())
	}
}

// searchOnce is the worker loop body: it batches AdvanceChunks calls
// to advanceState, recomputing numrollsI/numRollsSqrt from the root's
// current sims before each batch, and checks for a stop
// condition only between batches. deadline is checked at the same
// chunk boundaries as the stop flag, so a foreground-driven
// (Background=false) search honors params.Duration exactly like a
// backgrounded one instead of running unbounded until MaxSim.
func searchOnce[G comparable](ctx *searchCtx[G], rootPos G, stop *atomic.Bool, deadline time.Time) StopReason {
	logSearchStart(ctx.params)
	var finalReason StopReason
	var finalSims Value

	for {
		root := ctx.table.get(rootPos, ctx.inert)
		if r, done := terminalStop(root); done {
			finalReason = r
			break
		}

		ctx.numRolls = numRollsFor(root, ctx.params)
		ctx.numRollsSqrt = Value(math.Sqrt(float64(ctx.numRolls)))

		for i := 0; i < ctx.params.AdvanceChunks; i++ {
			advanceState(ctx, rootPos, ctx.params.Uniform)
		}

		if root = ctx.table.get(rootPos, ctx.inert); true {
			if trunk, ok := root.(*TrunkNode[G]); ok {
				finalSims = trunk.Sims
			}
		}
		logChunk(ctx.numRolls, finalSims)
		if ctx.listener != nil {
			ctx.listener(SearchInfo[G]{RootSims: finalSims, NumRolls: ctx.numRolls, TreeSize: ctx.table.len()})
		}

		if stop.Load() {
			finalReason = StopSignaled
			break
		}
		if time.Now().After(deadline) {
			finalReason = StopDeadline
			break
		}

		root = ctx.table.get(rootPos, ctx.inert)
		if r, done := terminalStop(root); done {
			finalReason = r
			break
		}
		if trunk, ok := root.(*TrunkNode[G]); ok && float64(trunk.Sims) > float64(ctx.params.MaxSim) {
			finalReason = StopSimCap
			break
		}
	}

	logSearchStop(finalReason, finalSims)
	return finalReason
}

func terminalStop[G comparable](root Node[G]) (StopReason, bool) {
	switch root.(type) {
	case *TerminalNode[G]:
		return StopTerminalRoot, true
	case InertTerminalNode:
		return StopTerminalRoot, true
	}
	return StopUnknown, false
}
