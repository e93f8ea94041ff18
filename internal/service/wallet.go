package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"gamezone/internal/model"
)

// recentLimit caps the transaction history returned by the read endpoints.
const recentLimit = 5

// Wallet serves the read-only financial views. All queries are keyed by
// the identity the auth guard resolved; nothing here accepts a
// client-supplied user identifier.
type Wallet struct {
	users  UserDirectory
	ledger TransactionLedger
}

func NewWallet(users UserDirectory, ledger TransactionLedger) *Wallet {
	return &Wallet{users: users, ledger: ledger}
}

// Balance returns the stored balance verbatim. Not-found passes through so
// the handler can answer 404; formatting is the client's problem.
func (w *Wallet) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	user, err := w.users.GetByID(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return user.Balance, nil
}

// RecentTransactions returns up to recentLimit entries, newest first.
// An empty history is returned as an empty slice, not an error.
func (w *Wallet) RecentTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	return w.ledger.RecentByUser(ctx, userID, recentLimit)
}

// Dashboard composes the balance projection and the recent history. The
// two sub-queries run concurrently and both must succeed; a missing user
// fails the whole call and no partial result escapes.
func (w *Wallet) Dashboard(ctx context.Context, userID uuid.UUID) (*model.Dashboard, error) {
	var (
		user *model.User
		txs  []model.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := w.users.GetByID(gctx, userID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		t, err := w.ledger.RecentByUser(gctx, userID, recentLimit)
		if err != nil {
			return fmt.Errorf("recent transactions: %w", err)
		}
		txs = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Dashboard{
		Balance:            user.Balance,
		RecentTransactions: txs,
	}, nil
}
