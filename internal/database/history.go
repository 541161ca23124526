package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cyberrps/arena/internal/game"
)

// InsertMatchRecords persists a batch of settled match records in one
// transaction. Used by the stats consumer that drains the Redis side channel.
func InsertMatchRecords(ctx context.Context, records []game.SettledMatch) error {
	if len(records) == 0 {
		return nil
	}
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx,
				`INSERT INTO match_history (room_id, mode, winner_id, loser_id, reward, reason, ended_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				rec.RoomID, rec.Mode, rec.WinnerID, rec.LoserID, rec.Reward, rec.Reason, rec.EndedAt,
			)
			if err != nil {
				return fmt.Errorf("insert match record %s: %w", rec.RoomID, err)
			}
		}
		return nil
	})
}
