package tictactoe

import (
	"testing"
	"time"

	"github.com/mcts-core/mcts-engine/mcts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(pos Position, cell int) Position {
	for _, a := range (Rules{}).Actions(pos) {
		if a.Label == itoa(cell) {
			return a.Next
		}
	}
	panic("cell not legal")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestNewIsEmptyBoardXToMove(t *testing.T) {
	pos := New()
	assert.Equal(t, mcts.Maximizer, pos.Turn)
	assert.Equal(t, uint16(0), pos.X)
	assert.Equal(t, uint16(0), pos.O)
}

func TestActionsEnumerateEveryEmptyCellInAscendingOrder(t *testing.T) {
	pos := New()
	actions := Rules{}.Actions(pos)
	require.Len(t, actions, 9)
	for i, a := range actions {
		assert.Equal(t, itoa(i), a.Label)
	}
}

func TestActionsShrinkAsCellsFill(t *testing.T) {
	pos := play(New(), 0)
	actions := Rules{}.Actions(pos)
	assert.Len(t, actions, 8)
	for _, a := range actions {
		assert.NotEqual(t, "0", a.Label)
	}
}

func TestNumActionsMatchesActionsLength(t *testing.T) {
	pos := play(play(New(), 0), 4)
	assert.Equal(t, len(Rules{}.Actions(pos)), Rules{}.NumActions(pos))
}

func TestPlayAlternatesTurnAndMarksCorrectSide(t *testing.T) {
	pos := New()
	pos = play(pos, 0)
	assert.Equal(t, mcts.Minimizer, pos.Turn)
	assert.NotEqual(t, uint16(0), pos.X)
	assert.Equal(t, uint16(0), pos.O)

	pos = play(pos, 1)
	assert.Equal(t, mcts.Maximizer, pos.Turn)
	assert.NotEqual(t, uint16(0), pos.O)
}

func TestTerminalDetectsRowWinForMaximizer(t *testing.T) {
	pos := New()
	// X: 0,1,2 (top row); O: 3,4 (no line of their own, so only the
	// row-win path can report a result).
	pos = play(pos, 0) // X
	pos = play(pos, 3) // O
	pos = play(pos, 1) // X
	pos = play(pos, 4) // O
	pos = play(pos, 2) // X completes top row

	v, ok := Rules{}.Terminal(pos)
	require.True(t, ok)
	assert.Equal(t, mcts.Value(1), v)
}

func TestTerminalDetectsColumnWinForMinimizer(t *testing.T) {
	pos := New()
	pos = play(pos, 0) // X
	pos = play(pos, 1) // O
	pos = play(pos, 3) // X
	pos = play(pos, 4) // O
	pos = play(pos, 8) // X
	pos = play(pos, 7) // O completes column 1,4,7

	v, ok := Rules{}.Terminal(pos)
	require.True(t, ok)
	assert.Equal(t, mcts.Value(-1), v)
}

func TestTerminalDetectsDiagonalWin(t *testing.T) {
	pos := New()
	pos = play(pos, 0) // X
	pos = play(pos, 1) // O
	pos = play(pos, 4) // X
	pos = play(pos, 2) // O
	pos = play(pos, 8) // X completes diagonal 0,4,8

	v, ok := Rules{}.Terminal(pos)
	require.True(t, ok)
	assert.Equal(t, mcts.Value(1), v)
}

func TestTerminalReportsDrawOnFullBoardNoWinner(t *testing.T) {
	// X O X
	// X O O
	// O X X
	pos := New()
	for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		pos = play(pos, cell)
	}
	v, ok := Rules{}.Terminal(pos)
	require.True(t, ok)
	assert.Equal(t, mcts.Value(0), v)
}

func TestTerminalFalseMidGame(t *testing.T) {
	pos := play(New(), 0)
	_, ok := Rules{}.Terminal(pos)
	assert.False(t, ok)
}

func TestActionFiltersKeepOnlyPositionsWithPlayedCellOccupied(t *testing.T) {
	pos := New()
	filters := Rules{}.ActionFilters(pos)
	require.Len(t, filters, 9)

	next := play(pos, 4)
	for _, f := range filters {
		if f.Label == "4" {
			assert.True(t, f.Predicate(next))
			assert.False(t, f.Predicate(pos))
		} else {
			assert.False(t, f.Predicate(pos))
		}
	}
}

func TestStringRendersThreeRows(t *testing.T) {
	pos := play(New(), 4)
	s := pos.String()
	assert.Contains(t, s, "X")
	assert.Equal(t, 2, countNewlines(s))
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func TestGameVarSatisfiesInterfaceEndToEnd(t *testing.T) {
	e := mcts.NewEngine[Position](Game, mcts.DefaultParams().SetDuration(5*time.Millisecond))
	label, _, err := e.Act(New())
	require.NoError(t, err)
	assert.NotEqual(t, "", label)
}
