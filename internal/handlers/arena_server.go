package handlers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cyberrps/arena/internal/cache"
	"github.com/cyberrps/arena/internal/database"
	"github.com/cyberrps/arena/internal/game"
)

// ArenaServer bundles the realtime arena state with the logger the handlers
// share. One instance serves the whole process.
type ArenaServer struct {
	Arena  *game.Arena
	Logger *logrus.Logger
}

// NewArenaServer wires the arena over the Postgres-backed wallet and hooks
// settled matches into the Redis side channel.
func NewArenaServer(logger *logrus.Logger) *ArenaServer {
	s := &ArenaServer{
		Arena:  game.NewArena(database.Accounts{}, logger),
		Logger: logger,
	}
	s.Arena.OnMatchSettled = s.publishMatchRecord
	return s
}

// publishMatchRecord pushes a settled match onto the Redis list. Failures are
// logged and swallowed; gameplay never waits on the side channel.
func (s *ArenaServer) publishMatchRecord(rec game.SettledMatch) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.PublishMatchResult(ctx, rec); err != nil {
		s.Logger.WithError(err).WithField("room_id", rec.RoomID).Warn("match record publish failed")
	}
}
