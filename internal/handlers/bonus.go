package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cyberrps/arena/internal/database"
)

// DailyBonusHandler grants today's login bonus. A repeat claim within the
// same UTC day is rejected without side effects.
func DailyBonusHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticateRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	claim, err := database.ClaimDailyBonus(r.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, database.ErrBonusAlreadyClaimed) {
			writeError(w, http.StatusBadRequest, "bonus already claimed today")
			return
		}
		writeError(w, http.StatusInternalServerError, "bonus claim failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reward":  claim.Reward,
		"streak":  claim.Streak,
		"coins":   claim.Balance,
	})
}
