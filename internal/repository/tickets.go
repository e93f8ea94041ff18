package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamezone/internal/model"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

type TicketRepo struct {
	db *pgxpool.Pool
}

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo {
	return &TicketRepo{db: db}
}

func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	query := `
		INSERT INTO tickets (reference, name, email, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, t.Reference, t.Name, t.Email, t.Amount, t.Status).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert ticket: %w", err)
	}

	return nil
}

// FindByReference looks a ticket up by its client-facing reference and the
// buyer's email; both must match, so one buyer cannot confirm another's ticket.
func (r *TicketRepo) FindByReference(ctx context.Context, reference, email string) (*model.Ticket, error) {
	query := `
		SELECT id, reference, name, email, amount, status, created_at
		FROM tickets
		WHERE reference = $1 AND email = $2`

	t := &model.Ticket{}
	err := r.db.QueryRow(ctx, query, reference, email).Scan(
		&t.ID, &t.Reference, &t.Name, &t.Email, &t.Amount, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query ticket: %w", err)
	}

	return t, nil
}

func (r *TicketRepo) UpdateStatus(ctx context.Context, reference string, status model.TicketStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tickets SET status = $2 WHERE reference = $1`, reference, status)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TicketRepo) CreateSupport(ctx context.Context, t *model.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (name, email, issue_type, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, t.Name, t.Email, t.IssueType, t.Message).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert support ticket: %w", err)
	}

	return nil
}
