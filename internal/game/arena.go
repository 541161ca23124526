package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SettledMatch summarizes a decided match for out-of-band consumers.
type SettledMatch struct {
	RoomID   string    `json:"room_id"`
	Mode     string    `json:"mode"` // "pvp" or "training"
	WinnerID uuid.UUID `json:"winner_id"`
	LoserID  uuid.UUID `json:"loser_id"`
	Reward   int       `json:"reward"`
	Reason   string    `json:"reason,omitempty"`
	EndedAt  time.Time `json:"ended_at"`
}

// Arena owns all realtime matchmaking state: the FIFO waiting queue, the live
// match sessions, and the training sessions. One instance per process. Every
// operation takes the arena lock, so queue and session transitions are atomic
// with the wallet calls they imply.
type Arena struct {
	mu      sync.Mutex
	queue   queue
	matches map[string]*MatchSession

	Bots   *BotStore
	wallet Wallet
	log    *logrus.Logger

	// OnMatchSettled, when set, is invoked after a match pays out. Called
	// outside the arena lock; implementations must not call back in.
	OnMatchSettled func(SettledMatch)
}

// NewArena wires an empty arena over the given wallet.
func NewArena(w Wallet, logger *logrus.Logger) *Arena {
	if logger == nil {
		logger = logrus.New()
	}
	return &Arena{
		matches: make(map[string]*MatchSession),
		Bots:    NewBotStore(w),
		wallet:  w,
		log:     logger,
	}
}

// JoinQueue enters the player into matchmaking. If someone is waiting, both
// stakes are escrowed atomically and a room opens; otherwise the player waits,
// provided their balance covers the stake. Joining supersedes any training
// session or stale queue entry the player left behind.
func (a *Arena) JoinQueue(ctx context.Context, conn *ClientConn) {
	a.Bots.Cancel(conn.PlayerID)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.queue.removePlayer(conn.PlayerID)
	a.abandonMatchesOf(ctx, conn.PlayerID, "opponent_left")

	joiner := &QueueEntry{PlayerID: conn.PlayerID, Identity: conn.Identity, Conn: conn}

	for a.queue.len() > 0 {
		opp := a.queue.pop()
		err := a.wallet.EscrowStakes(ctx, opp.PlayerID, conn.PlayerID, PvPStake)
		if err == nil {
			a.openMatch(opp, joiner)
			return
		}

		var short *InsufficientFundsError
		switch {
		case errors.As(err, &short) && short.UserID == conn.PlayerID:
			// Neither stake was taken. The waiting player keeps their spot.
			a.queue.pushFront(opp)
			conn.SendError("insufficient funds")
			return
		case errors.As(err, &short):
			// The waiting player went broke while queued; drop them and try
			// the next entry.
			opp.Conn.SendError("insufficient funds")
			a.log.WithField("user_id", opp.PlayerID).Info("removed broke player from queue")
		default:
			a.queue.pushFront(opp)
			a.log.WithError(err).Error("stake escrow failed")
			conn.SendError("matchmaking unavailable, try again")
			return
		}
	}

	bal, err := a.wallet.Balance(ctx, conn.PlayerID)
	if err != nil {
		a.log.WithError(err).Error("balance check failed")
		conn.SendError("matchmaking unavailable, try again")
		return
	}
	if bal < PvPStake {
		conn.SendError("insufficient funds")
		return
	}
	a.queue.push(joiner)
	conn.Send(Event{Type: EventQueueWaiting})
}

// openMatch creates the room after both stakes are escrowed. Caller holds the
// arena lock.
func (a *Arena) openMatch(p1, p2 *QueueEntry) {
	m := newMatchSession(p1, p2)
	a.matches[m.RoomID] = m
	m.broadcast(Event{
		Type:    EventMatchFound,
		RoomID:  m.RoomID,
		Players: []PlayerIdentity{p1.Identity, p2.Identity},
	})
	a.log.WithFields(logrus.Fields{
		"room_id": m.RoomID,
		"p1":      p1.PlayerID,
		"p2":      p2.PlayerID,
	}).Info("match created")
}

// SubmitMove records a player's move for the current round. Messages for
// unknown rooms, non-participants, decided matches, or an already locked-in
// round are ignored; stale and duplicate deliveries are expected traffic.
// When both moves are in, the round resolves and is broadcast, and a player
// reaching the win threshold settles the match.
func (a *Arena) SubmitMove(ctx context.Context, roomID string, playerID uuid.UUID, move Move) {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, ok := a.matches[roomID]
	if !ok || m.State != StateAwaitingMoves || !m.hasPlayer(playerID) {
		return
	}
	if _, locked := m.Moves[playerID]; locked {
		return
	}
	m.Moves[playerID] = move
	if len(m.Moves) < 2 {
		return
	}

	p1, p2 := m.Players[0], m.Players[1]
	m1, m2 := m.Moves[p1.PlayerID], m.Moves[p2.PlayerID]

	roundWinner := "draw"
	switch Resolve(m1, m2) {
	case OutcomeWin:
		m.Scores[p1.PlayerID]++
		roundWinner = p1.PlayerID.String()
	case OutcomeLose:
		m.Scores[p2.PlayerID]++
		roundWinner = p2.PlayerID.String()
	}

	m.broadcast(Event{
		Type:   EventRoundResult,
		RoomID: m.RoomID,
		Moves: map[string]Move{
			p1.PlayerID.String(): m1,
			p2.PlayerID.String(): m2,
		},
		Winner: roundWinner,
		Scores: map[string]int{
			p1.PlayerID.String(): m.Scores[p1.PlayerID],
			p2.PlayerID.String(): m.Scores[p2.PlayerID],
		},
	})
	m.Moves = make(map[uuid.UUID]Move)

	switch {
	case m.Scores[p1.PlayerID] >= WinThreshold:
		m.State = StateFinished
		a.settleMatch(ctx, m, p1, p2, "")
	case m.Scores[p2.PlayerID] >= WinThreshold:
		m.State = StateFinished
		a.settleMatch(ctx, m, p2, p1, "")
	}
}

// Disconnect removes whatever arena state is bound to the connection: a queue
// spot is simply vacated, while leaving a live match forfeits it and pays the
// remaining player the full pool.
func (a *Arena) Disconnect(ctx context.Context, conn *ClientConn) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.queue.removeConn(conn) {
		return
	}
	for _, m := range a.matches {
		idx := m.indexOf(conn)
		if idx < 0 || m.State != StateAwaitingMoves {
			continue
		}
		m.State = StateAbandoned
		survivor, leaver := m.Players[1-idx], m.Players[idx]
		survivor.Conn.Send(Event{Type: EventOpponentDisconnected, RoomID: m.RoomID})
		a.settleMatch(ctx, m, survivor, leaver, "opponent_disconnected")
		return
	}
}

// abandonMatchesOf forfeits any live match the player is still recorded in,
// in the opponent's favor. Caller holds the arena lock.
func (a *Arena) abandonMatchesOf(ctx context.Context, playerID uuid.UUID, reason string) {
	for _, m := range a.matches {
		if m.State != StateAwaitingMoves || !m.hasPlayer(playerID) {
			continue
		}
		idx := 0
		if m.Players[1].PlayerID == playerID {
			idx = 1
		}
		m.State = StateAbandoned
		survivor := m.Players[1-idx]
		survivor.Conn.Send(Event{Type: EventOpponentDisconnected, RoomID: m.RoomID})
		a.settleMatch(ctx, m, survivor, m.Players[idx], reason)
		return
	}
}

// settleMatch pays the pool to the winner, records both results, announces
// match_over, and removes the session. Caller holds the arena lock and has
// already moved the session out of StateAwaitingMoves.
func (a *Arena) settleMatch(ctx context.Context, m *MatchSession, winner, loser *QueueEntry, reason string) {
	if _, err := a.wallet.Credit(ctx, winner.PlayerID, PvPPool); err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"room_id": m.RoomID,
			"user_id": winner.PlayerID,
		}).Error("winner payout failed")
	}
	if err := a.wallet.RecordResult(ctx, winner.PlayerID, true); err != nil {
		a.log.WithError(err).Error("win record failed")
	}
	if err := a.wallet.RecordResult(ctx, loser.PlayerID, false); err != nil {
		a.log.WithError(err).Error("loss record failed")
	}

	m.broadcast(Event{
		Type:     EventMatchOver,
		RoomID:   m.RoomID,
		WinnerID: winner.PlayerID.String(),
		Reward:   PvPPool,
		Reason:   reason,
	})
	delete(a.matches, m.RoomID)

	a.log.WithFields(logrus.Fields{
		"room_id":   m.RoomID,
		"winner_id": winner.PlayerID,
		"reason":    reason,
	}).Info("match settled")

	if a.OnMatchSettled != nil {
		rec := SettledMatch{
			RoomID:   m.RoomID,
			Mode:     "pvp",
			WinnerID: winner.PlayerID,
			LoserID:  loser.PlayerID,
			Reward:   PvPPool,
			Reason:   reason,
			EndedAt:  time.Now().UTC(),
		}
		go a.OnMatchSettled(rec)
	}
}

// QueueLen reports how many players are waiting.
func (a *Arena) QueueLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queue.len()
}

// ActiveMatches reports how many rooms are live.
func (a *Arena) ActiveMatches() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.matches)
}
