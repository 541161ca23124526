package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyberrps/arena/internal/game"
)

// Balance returns the player's current coin count.
func Balance(ctx context.Context, id uuid.UUID) (int, error) {
	var coins int
	err := DB.QueryRow(ctx, `SELECT coins FROM users WHERE id=$1`, id).Scan(&coins)
	if err != nil {
		return 0, fmt.Errorf("balance lookup: %w", err)
	}
	return coins, nil
}

// Credit adds amount to the balance and returns the new total. Positive
// amounts also count toward total_earned.
func Credit(ctx context.Context, id uuid.UUID, amount int) (int, error) {
	var coins int
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`UPDATE users
			 SET coins = coins + $1,
			     total_earned = total_earned + GREATEST($1, 0)
			 WHERE id = $2
			 RETURNING coins`,
			amount, id,
		).Scan(&coins)
	})
	if err != nil {
		return 0, fmt.Errorf("credit: %w", err)
	}
	return coins, nil
}

// debitTx takes amount from the balance inside an open transaction. The
// guarded UPDATE only matches when the balance covers the amount, so the coin
// count can never go negative.
func debitTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET coins = coins - $1 WHERE id = $2 AND coins >= $1`,
		amount, id,
	)
	if err != nil {
		return fmt.Errorf("debit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &game.InsufficientFundsError{UserID: id}
	}
	return nil
}

// EscrowStakes debits the stake from both players in one transaction. A
// failure on either side rolls back the whole escrow.
func EscrowStakes(ctx context.Context, p1, p2 uuid.UUID, amount int) error {
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if err := debitTx(ctx, tx, p1, amount); err != nil {
			return err
		}
		return debitTx(ctx, tx, p2, amount)
	})
}

// RecordResult bumps the win or loss counter.
func RecordResult(ctx context.Context, id uuid.UUID, won bool) error {
	col := "losses"
	if won {
		col = "wins"
	}
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `UPDATE users SET `+col+` = `+col+` + 1 WHERE id=$1`, id)
		return err
	})
}

// Accounts adapts the package's free functions to the game.Wallet interface.
type Accounts struct{}

func (Accounts) Balance(ctx context.Context, id uuid.UUID) (int, error) {
	return Balance(ctx, id)
}

func (Accounts) Credit(ctx context.Context, id uuid.UUID, amount int) (int, error) {
	return Credit(ctx, id, amount)
}

func (Accounts) EscrowStakes(ctx context.Context, p1, p2 uuid.UUID, amount int) error {
	return EscrowStakes(ctx, p1, p2, amount)
}

func (Accounts) RecordResult(ctx context.Context, id uuid.UUID, won bool) error {
	return RecordResult(ctx, id, won)
}
