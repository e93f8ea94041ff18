package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamezone/internal/model"
)

// TransactionRepo reads the append-only ledger. Entries are written by
// the funding flows that mutate balances; this service never inserts.
type TransactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// RecentByUser returns up to limit entries owned by userID, newest first.
// An empty history is a valid result, not an error.
func (r *TransactionRepo) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, kind, amount, balance_after, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}

	return txs, nil
}
