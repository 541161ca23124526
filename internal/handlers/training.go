package handlers

import (
	"errors"
	"net/http"

	"github.com/cyberrps/arena/internal/game"
)

// StartTrainingHandler opens a fresh series against the bot, replacing any
// stale one the player left behind.
func StartTrainingHandler(s *ArenaServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticateRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		sess := s.Arena.Bots.Start(userID)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"playerWins": sess.PlayerWins,
			"botWins":    sess.BotWins,
		})
	}
}

// TrainingRoundHandler plays one round against the bot.
func TrainingRoundHandler(s *ArenaServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticateRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req struct {
			Move string `json:"move"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		move, err := game.ParseMove(req.Move)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid move")
			return
		}

		res, err := s.Arena.Bots.SubmitMove(userID, move)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrNoActiveMatch):
			writeError(w, http.StatusBadRequest, "no active training match")
			return
		case errors.Is(err, game.ErrMatchFinished):
			writeError(w, http.StatusBadRequest, "match already finished")
			return
		default:
			writeError(w, http.StatusInternalServerError, "round failed")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// EndTrainingHandler settles a finished series and pays the reward. The
// session survives a failed payout, so the client may retry.
func EndTrainingHandler(s *ArenaServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticateRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		res, err := s.Arena.Bots.Settle(r.Context(), userID)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrNoActiveMatch):
			writeError(w, http.StatusBadRequest, "no active training match")
			return
		case errors.Is(err, game.ErrMatchNotFinished):
			writeError(w, http.StatusBadRequest, "match not finished")
			return
		default:
			if res == nil {
				writeError(w, http.StatusInternalServerError, "settlement failed")
				return
			}
			// The payout committed; only the win/loss bookkeeping failed.
			s.Logger.WithError(err).WithField("user_id", userID).Warn("training result record failed")
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"won":           res.Won,
			"points_change": res.Reward,
			"coins":         res.NewBalance,
		})
	}
}

// CancelTrainingHandler forfeits the series without payout.
func CancelTrainingHandler(s *ArenaServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticateRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		s.Arena.Bots.Cancel(userID)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
