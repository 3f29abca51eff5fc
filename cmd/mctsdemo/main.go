package main

/*

This is a self-play demo of the tic-tac-toe Game implementation
(games/tictactoe) driving the mcts.Engine facade end to end: each
move calls Engine.Act, which searches for the configured duration and
carries its node-table cache into the next move.

*/

import (
	"fmt"
	"time"

	"github.com/mcts-core/mcts-engine/games/tictactoe"
	"github.com/mcts-core/mcts-engine/mcts"
	"github.com/muesli/termenv"
)

func main() {
	fmt.Println("Tic Tac Toe MCTS Example")

	profile := termenv.ColorProfile()

	params := mcts.DefaultParams().
		SetDuration(300 * time.Millisecond).
		SetExploration(1.4)

	engine := mcts.NewEngine[tictactoe.Position](tictactoe.Game, params)
	pos := tictactoe.New()

	for ply := 0; ; ply++ {
		if _, ok := (tictactoe.Rules{}).Terminal(pos); ok {
			break
		}

		label, next, err := engine.Act(pos)
		if err != nil {
			fmt.Println("search error:", err)
			return
		}
		if label == "" {
			break
		}

		fmt.Printf("ply %d: played cell %s\n", ply, label)
		engine = next

		for _, a := range (tictactoe.Rules{}).Actions(pos) {
			if a.Label == label {
				pos = a.Next
				break
			}
		}
		fmt.Println(colorBoard(pos, profile))
		fmt.Println()
	}

	v, _ := tictactoe.Rules{}.Terminal(pos)
	switch {
	case v > 0:
		fmt.Println(termenv.String("X wins").Foreground(profile.Color("2")).Bold())
	case v < 0:
		fmt.Println(termenv.String("O wins").Foreground(profile.Color("1")).Bold())
	default:
		fmt.Println("draw")
	}
}

func colorBoard(pos tictactoe.Position, profile termenv.Profile) string {
	board := pos.String()
	var out []byte
	for _, c := range board {
		switch c {
		case 'X':
			out = append(out, termenv.String("X").Foreground(profile.Color("2")).Bold().String()...)
		case 'O':
			out = append(out, termenv.String("O").Foreground(profile.Color("1")).Bold().String()...)
		default:
			out = append(out, byte(c))
		}
	}
	return string(out)
}
