package mcts

import "fmt"

// Value is a scalar outcome from the Maximizer's perspective, bounded
// by a search's configured Alpha/Beta. A value of Beta means a proven
// Maximizer win, Alpha a proven Minimizer win.
type Value float64

// Player identifies which side is to move at a position.
type Player uint8

const (
	Maximizer Player = iota
	Minimizer
)

func (p Player) String() string {
	if p == Maximizer {
		return "Maximizer"
	}
	return "Minimizer"
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Maximizer {
		return Minimizer
	}
	return Maximizer
}

// playerBound returns the value that signals a proven win for p: Beta
// for the Maximizer, Alpha for the Minimizer.
func playerBound(p Player, alpha, beta Value) Value {
	if p == Maximizer {
		return beta
	}
	return alpha
}

// playerObjective combines two candidate values the way p prefers:
// the Maximizer keeps the larger, the Minimizer the smaller.
func playerObjective(p Player, a, b Value) Value {
	if p == Maximizer {
		if a > b {
			return a
		}
		return b
	}
	if a < b {
		return a
	}
	return b
}

// sign flips a Maximizer-perspective magnitude into p's own preference
// direction, the way the priority formula does (spec §4.E).
func sign(p Player, v Value) Value {
	if p == Minimizer {
		return -v
	}
	return v
}

func (v Value) String() string {
	return fmt.Sprintf("%.4f", float64(v))
}
