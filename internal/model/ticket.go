package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketPending TicketStatus = "pending"
	TicketPaid    TicketStatus = "paid"
)

// Ticket is a purchased event ticket. Reference is the client-facing
// identifier used later to confirm payment.
type Ticket struct {
	ID        uuid.UUID       `json:"id"`
	Reference string          `json:"ticketId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Amount    decimal.Decimal `json:"amount"`
	Status    TicketStatus    `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SupportTicket is a customer support request, unrelated to purchases.
type SupportTicket struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IssueType string    `json:"issueType"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type PurchaseRequest struct {
	Reference string          `json:"ticketId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Amount    decimal.Decimal `json:"amount"`
}

type ConfirmPaymentRequest struct {
	Reference  string          `json:"ticketId"`
	Email      string          `json:"email"`
	UserName   string          `json:"userName"`
	EventName  string          `json:"eventName"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// PaymentConfirmedEvent is published on the bus when a ticket is marked paid.
// The mailer worker consumes it and sends the confirmation email.
type PaymentConfirmedEvent struct {
	Reference  string          `json:"ticket_id"`
	Email      string          `json:"email"`
	UserName   string          `json:"user_name"`
	EventName  string          `json:"event_name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}
