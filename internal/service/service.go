package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gamezone/internal/model"
)

var (
	// ErrUnauthorized covers every credential failure: malformed token, bad
	// signature, expired claim, revoked session, unresolved identity. Callers
	// must not learn which one it was.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrInvalidCredentials collapses unknown-email and wrong-password at login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingFields rejects requests with empty required fields.
	ErrMissingFields = errors.New("missing required fields")
)

// Storage interfaces the services depend on. Concrete implementations live
// in the repository package.

type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type TokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Find(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type TransactionLedger interface {
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Transaction, error)
}

type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) error
	FindByReference(ctx context.Context, reference, email string) (*model.Ticket, error)
	UpdateStatus(ctx context.Context, reference string, status model.TicketStatus) error
	CreateSupport(ctx context.Context, t *model.SupportTicket) error
}

type NewsletterStore interface {
	Subscribe(ctx context.Context, email string) (*model.Subscriber, error)
}

// EventBus publishes domain events for asynchronous consumers.
type EventBus interface {
	Publish(topic string, data []byte) error
}

// Service interfaces the transport layers depend on.

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.LoginResult, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) (*model.User, error)
}

type WalletService interface {
	Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	RecentTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*model.Dashboard, error)
}

type TicketService interface {
	Purchase(ctx context.Context, req model.PurchaseRequest) (*model.Ticket, error)
	ConfirmPayment(ctx context.Context, req model.ConfirmPaymentRequest) (*model.Ticket, error)
	CreateSupport(ctx context.Context, name, email, issueType, message string) (*model.SupportTicket, error)
}

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*model.Subscriber, error)
}
