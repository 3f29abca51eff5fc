// Package tictactoe is a minimal mcts.Game implementation: a
// bitboard-backed position and move generation via math/bits. Unlike a
// mutable board with MakeMove/UndoMove over shared state, this one is
// an immutable, comparable value so it can key mcts.NodeTable directly.
package tictactoe

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/mcts-core/mcts-engine/mcts"
)

// winning line patterns: rows, columns, diagonals, as 9-bit masks over
// cell indices 0..8.
var winLines = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

const fullBoard = uint16(0b111111111)

// Position is an immutable tic-tac-toe board: one bitboard per side
// plus whose turn it is. X is the Maximizer, O the Minimizer.
type Position struct {
	X, O uint16
	Turn mcts.Player
}

// New returns the empty starting position, X to move.
func New() Position {
	return Position{Turn: mcts.Maximizer}
}

func (p Position) occupied() uint16 { return p.X | p.O }

// Rules is the stateless mcts.Game[Position] implementation: it holds
// no board of its own, just the logic; the engine never mutates or
// owns a position, it's handed one on every call.
type Rules struct{}

// Player implements mcts.Game.
func (Rules) Player(pos Position) mcts.Player { return pos.Turn }

// Terminal implements mcts.Game: a line win reports ±1 from the
// Maximizer's perspective, a full board with no winner is a 0 draw.
func (Rules) Terminal(pos Position) (mcts.Value, bool) {
	for _, line := range winLines {
		if pos.X&line == line {
			return 1, true
		}
		if pos.O&line == line {
			return -1, true
		}
	}
	if pos.occupied() == fullBoard {
		return 0, true
	}
	return 0, false
}

// Actions implements mcts.Game: one action per empty cell, label is
// the cell index as a decimal string, in ascending cell order (stable
// for a given position).
func (Rules) Actions(pos Position) []mcts.Action[Position] {
	free := fullBoard &^ pos.occupied()
	actions := make([]mcts.Action[Position], 0, bits.OnesCount16(free))
	for free != 0 {
		cell := bits.TrailingZeros16(free)
		free &= free - 1

		next := pos
		bit := uint16(1) << cell
		if pos.Turn == mcts.Maximizer {
			next.X |= bit
		} else {
			next.O |= bit
		}
		next.Turn = pos.Turn.Opponent()

		actions = append(actions, mcts.Action[Position]{
			Label: strconv.Itoa(cell),
			Next:  next,
		})
	}
	return actions
}

// NumActions implements mcts.Game.
func (Rules) NumActions(pos Position) int {
	return bits.OnesCount16(fullBoard &^ pos.occupied())
}

// ActionFilters implements mcts.Game: after playing cell N, any cached
// position that does not have cell N occupied could not have resulted
// from that move, so its carry-over predicate checks occupancy of N.
func (Rules) ActionFilters(pos Position) []mcts.ActionFilter[Position] {
	free := fullBoard &^ pos.occupied()
	filters := make([]mcts.ActionFilter[Position], 0, bits.OnesCount16(free))
	for free != 0 {
		cell := bits.TrailingZeros16(free)
		free &= free - 1
		bit := uint16(1) << cell
		filters = append(filters, mcts.ActionFilter[Position]{
			Label:     strconv.Itoa(cell),
			Predicate: func(p Position) bool { return p.occupied()&bit != 0 },
		})
	}
	return filters
}

// String renders the board as three rows of X/O/. for debugging and
// cmd/mctsdemo's output.
func (pos Position) String() string {
	var cells [9]byte
	for i := 0; i < 9; i++ {
		bit := uint16(1) << i
		switch {
		case pos.X&bit != 0:
			cells[i] = 'X'
		case pos.O&bit != 0:
			cells[i] = 'O'
		default:
			cells[i] = '.'
		}
	}
	return fmt.Sprintf("%c%c%c\n%c%c%c\n%c%c%c",
		cells[0], cells[1], cells[2],
		cells[3], cells[4], cells[5],
		cells[6], cells[7], cells[8])
}

// Game is the mcts.Game[Position] instance consumers wire into
// mcts.NewEngine.
var Game mcts.Game[Position] = Rules{}
