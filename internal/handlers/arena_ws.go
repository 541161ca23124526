package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cyberrps/arena/internal/auth"
	"github.com/cyberrps/arena/internal/database"
	"github.com/cyberrps/arena/internal/game"
	"github.com/cyberrps/arena/internal/middleware"
)

// arenaMessage is the client-to-server frame. Type selects which other
// fields matter.
type arenaMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
	Token  string `json:"token,omitempty"`
	RoomID string `json:"roomId,omitempty"`
	Move   string `json:"move,omitempty"`
}

// ArenaWSHandler runs the realtime PvP gateway. The socket opens
// unauthenticated; the first join_queue frame must carry a valid token, and a
// claimed user id that contradicts the token closes the connection before any
// queue state exists.
func ArenaWSHandler(logger *logrus.Logger, s *ArenaServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"arena"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "arena" {
			c.Close(BadSubprotocolError, "client must speak the arena subprotocol")
			return
		}
		middleware.LogWebSocketConnect(logger, remoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		var client *game.ClientConn
		readErr := readArenaMessages(ctx, c, s, logger, &client)

		if client != nil {
			// The request context is gone once the read loop exits; the
			// forfeit settlement still has to run.
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.Arena.Disconnect(cleanupCtx, client)
			cleanupCancel()
		}
		middleware.LogWebSocketDisconnect(logger, remoteAddr, r.URL.Path, readErr)
	}
}

// readArenaMessages runs the read loop until the connection drops or a
// protocol violation closes it. The client pointer is populated after the
// first successful join_queue.
func readArenaMessages(ctx context.Context, c *websocket.Conn, s *ArenaServer, logger *logrus.Logger, client **game.ClientConn) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg arenaMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if *client != nil {
				(*client).SendError("invalid message")
			}
			continue
		}

		switch msg.Type {
		case "join_queue":
			sub, err := auth.VerifyToken(msg.Token)
			if err != nil {
				c.Close(InvalidAuthTokenError, "invalid auth token")
				return nil
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				c.Close(InvalidUserIDError, "invalid user id")
				return nil
			}
			if msg.UserID != "" && msg.UserID != userID.String() {
				logger.WithFields(logrus.Fields{
					"claimed": msg.UserID,
					"token":   userID,
				}).Warn("queue join user id mismatch")
				c.Close(InvalidUserIDError, "user id does not match token")
				return nil
			}

			if *client == nil {
				conn, err := newArenaClient(ctx, c, s, logger, userID)
				if err != nil {
					c.Close(websocket.StatusPolicyViolation, "profile lookup failed")
					return nil
				}
				*client = conn
			}
			s.Arena.JoinQueue(ctx, *client)

		case "submit_move":
			if *client == nil {
				c.Close(InvalidAuthTokenError, "join_queue required first")
				return nil
			}
			move, err := game.ParseMove(msg.Move)
			if err != nil {
				(*client).SendError("invalid move")
				continue
			}
			if msg.RoomID == "" {
				(*client).SendError("missing room id")
				continue
			}
			s.Arena.SubmitMove(ctx, msg.RoomID, (*client).PlayerID, move)

		case "ping":
			// Keepalive from clients that cannot send ws pings.

		default:
			if *client != nil {
				(*client).SendError("unknown message type")
			}
		}
	}
}

// newArenaClient loads the player's public profile and starts the write pump.
func newArenaClient(ctx context.Context, c *websocket.Conn, s *ArenaServer, logger *logrus.Logger, userID uuid.UUID) (*game.ClientConn, error) {
	user, err := database.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	handSkin, err := database.EquippedHandSkin(ctx, userID)
	if err != nil {
		logger.WithError(err).WithField("user_id", userID).Warn("hand skin lookup failed")
	}

	connCtx, cancel := context.WithCancel(ctx)
	conn := &game.ClientConn{
		PlayerID: userID,
		Identity: game.PlayerIdentity{
			UserID:   userID,
			Nickname: user.Nickname,
			Avatar:   user.Avatar,
			HandSkin: handSkin,
		},
		OutChan: make(chan game.Event, 32),
		Cancel:  cancel,
	}
	go arenaWritePump(connCtx, c, conn, logger)
	return conn, nil
}

// arenaWritePump drains the client's outbound buffer onto the socket and
// keeps the connection alive with periodic pings.
func arenaWritePump(ctx context.Context, c *websocket.Conn, conn *game.ClientConn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-conn.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Warnf("marshal event for user %v: %v", conn.PlayerID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("write to user %v: %v", conn.PlayerID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
