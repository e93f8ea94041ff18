package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gamezone/internal/model"
)

// TopicPaymentConfirmed carries model.PaymentConfirmedEvent payloads.
const TopicPaymentConfirmed = "tickets.payment.confirmed"

type Tickets struct {
	store TicketStore
	bus   EventBus
}

func NewTickets(store TicketStore, bus EventBus) *Tickets {
	return &Tickets{store: store, bus: bus}
}

// Purchase records a pending ticket. Payment happens out of band; the row
// stays pending until ConfirmPayment flips it.
func (s *Tickets) Purchase(ctx context.Context, req model.PurchaseRequest) (*model.Ticket, error) {
	if req.Reference == "" || req.Name == "" || req.Email == "" || req.Amount.IsZero() {
		return nil, ErrMissingFields
	}

	ticket := &model.Ticket{
		Reference: req.Reference,
		Name:      req.Name,
		Email:     req.Email,
		Amount:    req.Amount,
		Status:    model.TicketPending,
	}
	if err := s.store.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// ConfirmPayment marks the ticket paid and publishes the confirmation
// event for the mailer. Publish failure is logged, not surfaced: the
// payment is confirmed whether or not the email goes out.
func (s *Tickets) ConfirmPayment(ctx context.Context, req model.ConfirmPaymentRequest) (*model.Ticket, error) {
	if req.Reference == "" || req.Email == "" || req.UserName == "" || req.EventName == "" || req.TotalPrice.IsZero() {
		return nil, ErrMissingFields
	}

	ticket, err := s.store.FindByReference(ctx, req.Reference, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, ticket.Reference, model.TicketPaid); err != nil {
		return nil, fmt.Errorf("mark ticket paid: %w", err)
	}
	ticket.Status = model.TicketPaid

	event := model.PaymentConfirmedEvent{
		Reference:  ticket.Reference,
		Email:      ticket.Email,
		UserName:   req.UserName,
		EventName:  req.EventName,
		TotalPrice: req.TotalPrice,
		CreatedAt:  time.Now(),
	}
	data, _ := json.Marshal(event)
	if err := s.bus.Publish(TopicPaymentConfirmed, data); err != nil {
		slog.Error("failed to publish payment confirmation",
			"ticket", ticket.Reference,
			"error", err,
		)
	}

	return ticket, nil
}

func (s *Tickets) CreateSupport(ctx context.Context, name, email, issueType, message string) (*model.SupportTicket, error) {
	if name == "" || email == "" || issueType == "" || message == "" {
		return nil, ErrMissingFields
	}

	ticket := &model.SupportTicket{
		Name:      name,
		Email:     email,
		IssueType: issueType,
		Message:   message,
	}
	if err := s.store.CreateSupport(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}
