// Package game holds the core rock-paper-scissors state: round resolution,
// training sessions against the house bot, and the realtime PvP arena.
package game

import (
	"fmt"
	"math/rand"
)

// Move is one of the three legal hand signs. Inputs are parsed into this
// closed set at the boundary; anything else never reaches the resolver.
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Outcome is the result of a single round from the first mover's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

const (
	// WinThreshold ends a match once either side has this many round wins.
	WinThreshold = 3

	// PvPStake is escrowed from each player when a PvP match is created.
	PvPStake = 50

	// PvPPool is the combined escrow credited to the match winner.
	PvPPool = 2 * PvPStake

	// BotWinReward is the flat payout for beating the training bot.
	BotWinReward = 15
)

// beats maps each move to the move it defeats.
var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MovePaper:    MoveRock,
	MoveScissors: MovePaper,
}

// ParseMove validates a raw client string into a Move.
func ParseMove(s string) (Move, error) {
	switch m := Move(s); m {
	case MoveRock, MovePaper, MoveScissors:
		return m, nil
	default:
		return "", fmt.Errorf("invalid move %q", s)
	}
}

// Resolve returns the outcome for move a against move b. Equal moves draw;
// otherwise the cyclic dominance relation decides.
func Resolve(a, b Move) Outcome {
	if a == b {
		return OutcomeDraw
	}
	if beats[a] == b {
		return OutcomeWin
	}
	return OutcomeLose
}

// RandomMove returns a uniformly random move for the bot.
func RandomMove() Move {
	switch rand.Intn(3) {
	case 0:
		return MoveRock
	case 1:
		return MovePaper
	default:
		return MoveScissors
	}
}
