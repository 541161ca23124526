package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrBonusAlreadyClaimed is returned for a second claim within the same UTC day.
var ErrBonusAlreadyClaimed = errors.New("daily bonus already claimed today")

// DailyRewards is the escalating bonus ladder; the streak indexes it mod 7.
var DailyRewards = [7]int{50, 100, 150, 200, 250, 300, 1000}

// BonusClaim reports the outcome of a successful daily bonus claim.
type BonusClaim struct {
	Reward  int `json:"reward"`
	Streak  int `json:"streak"`
	Balance int `json:"coins"`
}

// ClaimDailyBonus grants today's bonus in a single transaction. A claim on
// the day after the previous one extends the streak; any longer gap resets it
// to one. The row is locked for the read-modify-write so concurrent claims
// cannot both pay out.
func ClaimDailyBonus(ctx context.Context, userID uuid.UUID, now time.Time) (*BonusClaim, error) {
	today := now.UTC().Truncate(24 * time.Hour)

	var claim BonusClaim
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var (
			streak    int
			lastClaim *time.Time
		)
		err := tx.QueryRow(ctx,
			`SELECT login_streak, last_claim_date FROM users WHERE id=$1 FOR UPDATE`,
			userID,
		).Scan(&streak, &lastClaim)
		if err != nil {
			return err
		}

		if lastClaim != nil {
			last := lastClaim.UTC().Truncate(24 * time.Hour)
			switch {
			case last.Equal(today):
				return ErrBonusAlreadyClaimed
			case today.Sub(last) == 24*time.Hour:
				streak++
			default:
				streak = 1
			}
		} else {
			streak = 1
		}

		reward := DailyRewards[(streak-1)%len(DailyRewards)]
		err = tx.QueryRow(ctx,
			`UPDATE users
			 SET coins = coins + $1,
			     total_earned = total_earned + $1,
			     login_streak = $2,
			     last_claim_date = $3
			 WHERE id = $4
			 RETURNING coins`,
			reward, streak, today, userID,
		).Scan(&claim.Balance)
		if err != nil {
			return err
		}
		claim.Reward = reward
		claim.Streak = streak
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBonusAlreadyClaimed) {
			return nil, err
		}
		return nil, fmt.Errorf("claim daily bonus: %w", err)
	}
	return &claim, nil
}
