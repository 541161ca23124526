package game

import "github.com/google/uuid"

// QueueEntry is one waiting player. The connection is kept alongside the id so
// a disconnect while waiting removes exactly the right entry.
type QueueEntry struct {
	PlayerID uuid.UUID
	Identity PlayerIdentity
	Conn     *ClientConn
}

// queue is the FIFO waiting list for the arena. It is not safe for concurrent
// use on its own; the Arena serializes access under its lock.
type queue struct {
	entries []*QueueEntry
}

func (q *queue) len() int {
	return len(q.entries)
}

func (q *queue) push(e *QueueEntry) {
	q.entries = append(q.entries, e)
}

// pushFront restores an entry to the head of the line, used when a pairing
// falls through and the waiting player should not lose their place.
func (q *queue) pushFront(e *QueueEntry) {
	q.entries = append([]*QueueEntry{e}, q.entries...)
}

func (q *queue) pop() *QueueEntry {
	if len(q.entries) == 0 {
		return nil
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	return e
}

// removePlayer drops every entry for the given player and reports whether any
// was present. Covers stale entries left by a reconnecting client.
func (q *queue) removePlayer(playerID uuid.UUID) bool {
	kept := q.entries[:0]
	removed := false
	for _, e := range q.entries {
		if e.PlayerID == playerID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	return removed
}

// removeConn drops the entry bound to the given connection, if present.
func (q *queue) removeConn(conn *ClientConn) bool {
	for i, e := range q.entries {
		if e.Conn == conn {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}
