package service

import (
	"context"

	"gamezone/internal/model"
)

type Newsletter struct {
	store NewsletterStore
}

func NewNewsletter(store NewsletterStore) *Newsletter {
	return &Newsletter{store: store}
}

func (s *Newsletter) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	if email == "" {
		return nil, ErrMissingFields
	}
	return s.store.Subscribe(ctx, email)
}
