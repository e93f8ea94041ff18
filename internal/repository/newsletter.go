package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamezone/internal/model"
)

type NewsletterRepo struct {
	db *pgxpool.Pool
}

func NewNewsletterRepo(db *pgxpool.Pool) *NewsletterRepo {
	return &NewsletterRepo{db: db}
}

// Subscribe inserts the address, relying on the unique constraint to
// reject addresses that are already subscribed.
func (r *NewsletterRepo) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		RETURNING email, subscribed_at`

	s := &model.Subscriber{}
	err := r.db.QueryRow(ctx, query, email).Scan(&s.Email, &s.SubscribedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}

	return s, nil
}
