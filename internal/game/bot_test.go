package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedBot makes the store's bot always throw the given move.
func fixedBot(s *BotStore, m Move) {
	s.moveFn = func() Move { return m }
}

func TestBotSessionPlayerWinsSeries(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet()
	player := uuid.New()
	w.set(player, 1000)

	s := NewBotStore(w)
	fixedBot(s, MoveScissors)
	s.Start(player)

	for i := 1; i <= 2; i++ {
		res, err := s.SubmitMove(player, MoveRock)
		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, res.Outcome)
		assert.Equal(t, i, res.PlayerWins)
		assert.False(t, res.Finished)
	}
	res, err := s.SubmitMove(player, MoveRock)
	require.NoError(t, err)
	assert.Equal(t, 3, res.PlayerWins)
	assert.True(t, res.Finished)

	// The decided series no longer accepts moves.
	_, err = s.SubmitMove(player, MoveRock)
	assert.ErrorIs(t, err, ErrMatchFinished)

	settle, err := s.Settle(ctx, player)
	require.NoError(t, err)
	assert.True(t, settle.Won)
	assert.Equal(t, BotWinReward, settle.Reward)
	assert.Equal(t, 1000+BotWinReward, settle.NewBalance)
	assert.Equal(t, 1, w.wins[player])

	// Already settled: a second settle must not pay again.
	_, err = s.Settle(ctx, player)
	assert.ErrorIs(t, err, ErrNoActiveMatch)
	bal, _ := w.Balance(ctx, player)
	assert.Equal(t, 1000+BotWinReward, bal)
}

func TestBotSessionLossPaysNothing(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet()
	player := uuid.New()
	w.set(player, 200)

	s := NewBotStore(w)
	fixedBot(s, MovePaper)
	s.Start(player)

	for i := 0; i < 3; i++ {
		_, err := s.SubmitMove(player, MoveRock)
		require.NoError(t, err)
	}
	settle, err := s.Settle(ctx, player)
	require.NoError(t, err)
	assert.False(t, settle.Won)
	assert.Zero(t, settle.Reward)
	assert.Equal(t, 200, settle.NewBalance)
	assert.Equal(t, 1, w.losses[player])
}

func TestBotSessionDrawAdvancesNeither(t *testing.T) {
	w := newFakeWallet()
	player := uuid.New()

	s := NewBotStore(w)
	fixedBot(s, MoveRock)
	s.Start(player)

	res, err := s.SubmitMove(player, MoveRock)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDraw, res.Outcome)
	assert.Zero(t, res.PlayerWins)
	assert.Zero(t, res.BotWins)
	assert.False(t, res.Finished)
}

func TestBotSessionGuards(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet()
	player := uuid.New()
	s := NewBotStore(w)

	_, err := s.SubmitMove(player, MoveRock)
	assert.ErrorIs(t, err, ErrNoActiveMatch)

	_, err = s.Settle(ctx, player)
	assert.ErrorIs(t, err, ErrNoActiveMatch)

	fixedBot(s, MoveScissors)
	s.Start(player)
	_, err = s.SubmitMove(player, MoveRock)
	require.NoError(t, err)

	// Settling a live series is refused.
	_, err = s.Settle(ctx, player)
	assert.ErrorIs(t, err, ErrMatchNotFinished)
}

func TestBotSessionStartReplacesStale(t *testing.T) {
	w := newFakeWallet()
	player := uuid.New()
	s := NewBotStore(w)
	fixedBot(s, MoveScissors)

	s.Start(player)
	_, err := s.SubmitMove(player, MoveRock)
	require.NoError(t, err)

	sess := s.Start(player)
	assert.Zero(t, sess.PlayerWins)
	assert.Zero(t, sess.BotWins)
}

func TestBotSessionFailedCreditKeepsSession(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet()
	player := uuid.New()
	w.set(player, 100)

	s := NewBotStore(w)
	fixedBot(s, MoveScissors)
	s.Start(player)
	for i := 0; i < 3; i++ {
		_, err := s.SubmitMove(player, MoveRock)
		require.NoError(t, err)
	}

	w.creditErr = assert.AnError
	_, err := s.Settle(ctx, player)
	require.Error(t, err)

	// The session survived the failed payout, so a retry succeeds and pays
	// exactly once.
	w.creditErr = nil
	settle, err := s.Settle(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, 100+BotWinReward, settle.NewBalance)
}

func TestBotSessionCancel(t *testing.T) {
	w := newFakeWallet()
	player := uuid.New()
	s := NewBotStore(w)
	s.Start(player)

	s.Cancel(player)
	_, ok := s.Get(player)
	assert.False(t, ok)

	// Cancelling with nothing to cancel is fine.
	s.Cancel(player)
}
