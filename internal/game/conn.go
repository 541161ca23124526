package game

import (
	"github.com/google/uuid"
)

// EventType tags every server-to-client arena message.
type EventType string

const (
	EventQueueWaiting         EventType = "queue_waiting"
	EventMatchFound           EventType = "match_found"
	EventRoundResult          EventType = "round_result"
	EventMatchOver            EventType = "match_over"
	EventOpponentDisconnected EventType = "opponent_disconnected"
	EventError                EventType = "error"
)

// PlayerIdentity is the public slice of a profile shown to the opponent.
type PlayerIdentity struct {
	UserID   uuid.UUID `json:"userId"`
	Nickname string    `json:"nickname"`
	Avatar   string    `json:"avatar"`
	HandSkin string    `json:"handSkin,omitempty"`
}

// Event is one arena message. Fields are populated per type and omitted
// otherwise, so a single struct covers the whole server-to-client surface.
type Event struct {
	Type     EventType        `json:"type"`
	RoomID   string           `json:"roomId,omitempty"`
	Players  []PlayerIdentity `json:"players,omitempty"`
	Moves    map[string]Move  `json:"moves,omitempty"`
	Winner   string           `json:"winner,omitempty"` // round winner user id, or "draw"
	Scores   map[string]int   `json:"scores,omitempty"`
	WinnerID string           `json:"winnerId,omitempty"`
	Reward   int              `json:"reward,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// ClientConn is one authenticated realtime client as the arena sees it.
// Events are queued on OutChan; the transport's write pump owns the socket.
type ClientConn struct {
	PlayerID uuid.UUID
	Identity PlayerIdentity
	OutChan  chan Event
	Cancel   func()
}

// Send queues an event without blocking. A client whose buffer is full is
// either gone or hopelessly behind; the disconnect path cleans it up.
func (c *ClientConn) Send(ev Event) {
	select {
	case c.OutChan <- ev:
	default:
	}
}

// SendError queues an error event with a human-readable message.
func (c *ClientConn) SendError(msg string) {
	c.Send(Event{Type: EventError, Message: msg})
}
