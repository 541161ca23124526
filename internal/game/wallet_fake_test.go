package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// fakeWallet is an in-memory Wallet for exercising match logic without a
// database. Escrow mirrors the production all-or-nothing contract.
type fakeWallet struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int
	wins     map[uuid.UUID]int
	losses   map[uuid.UUID]int

	creditErr error
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{
		balances: make(map[uuid.UUID]int),
		wins:     make(map[uuid.UUID]int),
		losses:   make(map[uuid.UUID]int),
	}
}

func (w *fakeWallet) set(id uuid.UUID, coins int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[id] = coins
}

func (w *fakeWallet) Balance(_ context.Context, id uuid.UUID) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[id], nil
}

func (w *fakeWallet) Credit(_ context.Context, id uuid.UUID, amount int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.creditErr != nil {
		return 0, w.creditErr
	}
	w.balances[id] += amount
	return w.balances[id], nil
}

func (w *fakeWallet) EscrowStakes(_ context.Context, p1, p2 uuid.UUID, amount int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balances[p1] < amount {
		return &InsufficientFundsError{UserID: p1}
	}
	if w.balances[p2] < amount {
		return &InsufficientFundsError{UserID: p2}
	}
	w.balances[p1] -= amount
	w.balances[p2] -= amount
	return nil
}

func (w *fakeWallet) RecordResult(_ context.Context, id uuid.UUID, won bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if won {
		w.wins[id]++
	} else {
		w.losses[id]++
	}
	return nil
}
