package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkBudCollectsAllChildren(t *testing.T) {
	g := coinFlipGame()
	bud := mkBud[string](g, "root")
	require.Len(t, bud.Pending, 2)
	assert.Empty(t, bud.Done)
	assert.ElementsMatch(t, []string{"a", "b"}, bud.Pending)
}

func TestNodeTotalsBud(t *testing.T) {
	bud := &BudNode[string]{
		Done: []budEntry[string]{
			{Pos: "a", Wins: 2, Subsims: 1},
			{Pos: "b", Wins: -1, Subsims: 2},
		},
	}
	wins, sims, ok := nodeTotals[string](bud)
	require.True(t, ok)
	assert.Equal(t, Value(1), wins)
	assert.Equal(t, Value(3), sims)
}

func TestNodeTotalsTrunk(t *testing.T) {
	trunk := &TrunkNode[string]{Sims: 10, Wins: 4}
	wins, sims, ok := nodeTotals[string](trunk)
	require.True(t, ok)
	assert.Equal(t, Value(4), wins)
	assert.Equal(t, Value(10), sims)
}

func TestNodeTotalsTerminal(t *testing.T) {
	term := &TerminalNode[string]{Value: 1}
	wins, sims, ok := nodeTotals[string](term)
	require.True(t, ok)
	assert.Equal(t, Value(1), wins)
	assert.Equal(t, Value(1), sims)

	inert := InertTerminalNode{Value: -1}
	wins, sims, ok = nodeTotals[string](inert)
	require.True(t, ok)
	assert.Equal(t, Value(-1), wins)
	assert.Equal(t, Value(1), sims)
}

func TestNodeMeanZeroSimsIsNotOk(t *testing.T) {
	bud := &BudNode[string]{}
	_, ok := nodeMean[string](bud)
	assert.False(t, ok)
}

func TestNodeMeanRatio(t *testing.T) {
	trunk := &TrunkNode[string]{Sims: 4, Wins: 2}
	mean, ok := nodeMean[string](trunk)
	require.True(t, ok)
	assert.Equal(t, Value(0.5), mean)
}
