package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInsufficientFunds signals a debit that would take a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoActiveMatch signals an operation against a session that does not exist.
	ErrNoActiveMatch = errors.New("no active match")

	// ErrMatchNotFinished signals a settlement attempt on a live session.
	ErrMatchNotFinished = errors.New("match not finished")

	// ErrMatchFinished signals a move submitted to an already decided session.
	ErrMatchFinished = errors.New("match already finished")
)

// InsufficientFundsError reports which player could not cover a debit.
// It unwraps to ErrInsufficientFunds.
type InsufficientFundsError struct {
	UserID uuid.UUID
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s", e.UserID)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Wallet is the slice of the account store the match core needs: atomic coin
// mutations and win/loss bookkeeping. The database package implements it;
// tests substitute an in-memory fake.
type Wallet interface {
	// Balance returns the player's current coin count.
	Balance(ctx context.Context, userID uuid.UUID) (int, error)

	// Credit adds amount to the player's balance and returns the new balance.
	Credit(ctx context.Context, userID uuid.UUID, amount int) (int, error)

	// EscrowStakes debits amount from both players in a single transaction.
	// Either both debits commit or neither does; when a side cannot cover the
	// stake the returned error wraps ErrInsufficientFunds and identifies them.
	EscrowStakes(ctx context.Context, p1, p2 uuid.UUID, amount int) error

	// RecordResult bumps the player's cumulative win or loss counter.
	RecordResult(ctx context.Context, userID uuid.UUID, won bool) error
}
