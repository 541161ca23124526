package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// BotSession tracks one player's first-to-three series against the house bot.
type BotSession struct {
	PlayerID   uuid.UUID
	PlayerWins int
	BotWins    int
	Finished   bool
}

// RoundResult is returned to the caller after each training round.
type RoundResult struct {
	BotMove    Move    `json:"botMove"`
	Outcome    Outcome `json:"result"`
	PlayerWins int     `json:"playerWins"`
	BotWins    int     `json:"botWins"`
	Finished   bool    `json:"finished"`
}

// SettleResult reports the payout of a finished training session.
type SettleResult struct {
	Won        bool `json:"won"`
	Reward     int  `json:"reward"`
	NewBalance int  `json:"coins"`
}

// BotStore owns every live training session, keyed by player id. A player has
// at most one session; Start replaces whatever was there.
type BotStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*BotSession
	wallet   Wallet
	moveFn   func() Move // bot move source, swapped out in tests
}

// NewBotStore returns an empty store settling rewards through w.
func NewBotStore(w Wallet) *BotStore {
	return &BotStore{
		sessions: make(map[uuid.UUID]*BotSession),
		wallet:   w,
		moveFn:   RandomMove,
	}
}

// Start creates a fresh zero-score session for the player, discarding any
// unfinished or unsettled one.
func (s *BotStore) Start(playerID uuid.UUID) *BotSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &BotSession{PlayerID: playerID}
	s.sessions[playerID] = sess
	return sess
}

// Get returns the player's live session, if any.
func (s *BotStore) Get(playerID uuid.UUID) (*BotSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	return sess, ok
}

// SubmitMove plays one round: the bot picks its move, the round resolves, and
// the winning side's counter advances. Reaching WinThreshold freezes the
// session; it then only accepts Settle or Cancel.
func (s *BotStore) SubmitMove(playerID uuid.UUID, move Move) (*RoundResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	if !ok {
		return nil, ErrNoActiveMatch
	}
	if sess.Finished {
		return nil, ErrMatchFinished
	}

	botMove := s.moveFn()
	outcome := Resolve(move, botMove)
	switch outcome {
	case OutcomeWin:
		sess.PlayerWins++
	case OutcomeLose:
		sess.BotWins++
	}
	if sess.PlayerWins >= WinThreshold || sess.BotWins >= WinThreshold {
		sess.Finished = true
	}

	return &RoundResult{
		BotMove:    botMove,
		Outcome:    outcome,
		PlayerWins: sess.PlayerWins,
		BotWins:    sess.BotWins,
		Finished:   sess.Finished,
	}, nil
}

// Settle pays out a finished session and removes it. The session is deleted
// only once the credit has committed, so a failed wallet write leaves it in
// place and the caller may retry without risking a double payout.
func (s *BotStore) Settle(ctx context.Context, playerID uuid.UUID) (*SettleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	if !ok {
		return nil, ErrNoActiveMatch
	}
	if !sess.Finished {
		return nil, ErrMatchNotFinished
	}

	won := sess.PlayerWins >= WinThreshold
	var (
		balance int
		err     error
	)
	if won {
		balance, err = s.wallet.Credit(ctx, playerID, BotWinReward)
	} else {
		balance, err = s.wallet.Balance(ctx, playerID)
	}
	if err != nil {
		return nil, err
	}
	delete(s.sessions, playerID)

	reward := 0
	if won {
		reward = BotWinReward
	}
	res := &SettleResult{Won: won, Reward: reward, NewBalance: balance}
	if err := s.wallet.RecordResult(ctx, playerID, won); err != nil {
		// The payout already committed and the session is gone; surface the
		// bookkeeping failure alongside the result.
		return res, err
	}
	return res, nil
}

// Cancel forfeits and removes the player's session, paid or not. Cancelling a
// player with no session is a no-op.
func (s *BotStore) Cancel(playerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, playerID)
}
