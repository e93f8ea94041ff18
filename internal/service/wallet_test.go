package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamezone/internal/model"
	"gamezone/internal/repository"
)

type mockLedger struct {
	txs       []model.Transaction
	err       error
	lastLimit int
}

func (m *mockLedger) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Transaction, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Transaction{}
	for _, tx := range m.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func ledgerFor(userID uuid.UUID, n int) *mockLedger {
	txs := make([]model.Transaction, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		txs = append(txs, model.Transaction{
			ID:        uuid.New(),
			UserID:    userID,
			Kind:      model.KindDeposit,
			Amount:    decimal.NewFromInt(int64(10 * (i + 1))),
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	return &mockLedger{txs: txs}
}

func TestBalance_ReturnsStoredValueVerbatim(t *testing.T) {
	user := &model.User{ID: uuid.New(), Balance: decimal.NewFromInt(500)}
	wallet := NewWallet(&mockUsers{byID: map[uuid.UUID]*model.User{user.ID: user}}, &mockLedger{})

	balance, err := wallet.Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)))
}

func TestBalance_UserNotFound(t *testing.T) {
	wallet := NewWallet(&mockUsers{}, &mockLedger{})

	_, err := wallet.Balance(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecentTransactions_TruncatedToFiveNewestFirst(t *testing.T) {
	userID := uuid.New()
	ledger := ledgerFor(userID, 7)
	wallet := NewWallet(&mockUsers{}, ledger)

	txs, err := wallet.RecentTransactions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	assert.Equal(t, 5, ledger.lastLimit)

	for i := 1; i < len(txs); i++ {
		assert.True(t, txs[i].CreatedAt.Before(txs[i-1].CreatedAt),
			"transactions must be ordered newest first")
	}
}

func TestRecentTransactions_ScopedToOwner(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	ledger := ledgerFor(userA, 3)
	ledger.txs = append(ledger.txs, model.Transaction{
		ID: uuid.New(), UserID: userB, Kind: model.KindWithdraw, CreatedAt: time.Now(),
	})
	wallet := NewWallet(&mockUsers{}, ledger)

	txs, err := wallet.RecentTransactions(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		assert.Equal(t, userA, tx.UserID)
	}
}

func TestDashboard_ComposesBothViews(t *testing.T) {
	user := &model.User{ID: uuid.New(), Balance: decimal.NewFromInt(500)}
	wallet := NewWallet(
		&mockUsers{byID: map[uuid.UUID]*model.User{user.ID: user}},
		ledgerFor(user.ID, 7),
	)

	dashboard, err := wallet.Dashboard(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, dashboard.Balance.Equal(decimal.NewFromInt(500)))
	assert.Len(t, dashboard.RecentTransactions, 5)
}

func TestDashboard_AllOrNothing(t *testing.T) {
	// User record missing: no partial transaction data may escape.
	userID := uuid.New()
	wallet := NewWallet(&mockUsers{}, ledgerFor(userID, 3))

	dashboard, err := wallet.Dashboard(context.Background(), userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, dashboard)
}

func TestDashboard_LedgerFailure(t *testing.T) {
	user := &model.User{ID: uuid.New(), Balance: decimal.NewFromInt(500)}
	wallet := NewWallet(
		&mockUsers{byID: map[uuid.UUID]*model.User{user.ID: user}},
		&mockLedger{err: errors.New("connection reset")},
	)

	dashboard, err := wallet.Dashboard(context.Background(), user.ID)
	require.Error(t, err)
	assert.Nil(t, dashboard)
}

func TestDashboard_EmptyHistoryStillSucceeds(t *testing.T) {
	user := &model.User{ID: uuid.New(), Balance: decimal.NewFromInt(0)}
	wallet := NewWallet(&mockUsers{byID: map[uuid.UUID]*model.User{user.ID: user}}, &mockLedger{})

	dashboard, err := wallet.Dashboard(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, dashboard.RecentTransactions)
}
