package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTruthTable(t *testing.T) {
	cases := []struct {
		a, b Move
		want Outcome
	}{
		{MoveRock, MoveRock, OutcomeDraw},
		{MoveRock, MovePaper, OutcomeLose},
		{MoveRock, MoveScissors, OutcomeWin},
		{MovePaper, MoveRock, OutcomeWin},
		{MovePaper, MovePaper, OutcomeDraw},
		{MovePaper, MoveScissors, OutcomeLose},
		{MoveScissors, MoveRock, OutcomeLose},
		{MoveScissors, MovePaper, OutcomeWin},
		{MoveScissors, MoveScissors, OutcomeDraw},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Resolve(c.a, c.b), "%s vs %s", c.a, c.b)
	}
}

func TestResolveAntiSymmetry(t *testing.T) {
	moves := []Move{MoveRock, MovePaper, MoveScissors}
	for _, a := range moves {
		for _, b := range moves {
			got, inverse := Resolve(a, b), Resolve(b, a)
			switch got {
			case OutcomeDraw:
				assert.Equal(t, OutcomeDraw, inverse)
				assert.Equal(t, a, b)
			case OutcomeWin:
				assert.Equal(t, OutcomeLose, inverse)
			case OutcomeLose:
				assert.Equal(t, OutcomeWin, inverse)
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	for _, s := range []string{"rock", "paper", "scissors"} {
		m, err := ParseMove(s)
		require.NoError(t, err)
		assert.Equal(t, Move(s), m)
	}
	for _, s := range []string{"", "Rock", "lizard", "rock "} {
		_, err := ParseMove(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestRandomMoveStaysInSet(t *testing.T) {
	for i := 0; i < 100; i++ {
		m := RandomMove()
		_, err := ParseMove(string(m))
		require.NoError(t, err)
	}
}
