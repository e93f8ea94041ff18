package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit  TransactionKind = "deposit"
	KindWithdraw TransactionKind = "withdraw"
	KindTransfer TransactionKind = "transfer"
)

// Transaction is one immutable entry of the append-only ledger.
// BalanceAfter is the owner's balance snapshot taken when the entry was written.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Dashboard is the combined read served by GET /api/users/dashboard.
type Dashboard struct {
	Balance            decimal.Decimal `json:"balance"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
}
