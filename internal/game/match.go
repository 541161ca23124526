package game

import (
	"fmt"

	"github.com/google/uuid"
)

// MatchState is the lifecycle of a PvP session.
type MatchState string

const (
	// StateAwaitingMoves accepts move submissions for the current round.
	StateAwaitingMoves MatchState = "awaiting_moves"
	// StateFinished is reached when a player hits the win threshold.
	StateFinished MatchState = "finished"
	// StateAbandoned is reached when a participant disconnects mid-match.
	StateAbandoned MatchState = "abandoned"
)

// MatchSession is one paired room: two players, the pending moves for the
// current round, and the running score. All access goes through the owning
// Arena's lock.
type MatchSession struct {
	RoomID  string
	Players [2]*QueueEntry
	Moves   map[uuid.UUID]Move
	Scores  map[uuid.UUID]int
	State   MatchState
}

func newMatchSession(p1, p2 *QueueEntry) *MatchSession {
	return &MatchSession{
		RoomID:  fmt.Sprintf("room_%s_%s", p1.PlayerID, p2.PlayerID),
		Players: [2]*QueueEntry{p1, p2},
		Moves:   make(map[uuid.UUID]Move),
		Scores:  map[uuid.UUID]int{p1.PlayerID: 0, p2.PlayerID: 0},
		State:   StateAwaitingMoves,
	}
}

// indexOf locates a participant by connection, -1 for strangers. Matching on
// the connection rather than the id keeps a reconnected client's new socket
// from steering a room its old socket created.
func (m *MatchSession) indexOf(conn *ClientConn) int {
	for i, p := range m.Players {
		if p.Conn == conn {
			return i
		}
	}
	return -1
}

func (m *MatchSession) hasPlayer(playerID uuid.UUID) bool {
	return m.Players[0].PlayerID == playerID || m.Players[1].PlayerID == playerID
}

// broadcast queues an event on both players' connections.
func (m *MatchSession) broadcast(ev Event) {
	for _, p := range m.Players {
		p.Conn.Send(ev)
	}
}
