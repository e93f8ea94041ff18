// Package mailer sends the payment-confirmation email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"gamezone/internal/config"
	"gamezone/internal/model"
)

// Sender delivers a payment confirmation to the buyer.
type Sender interface {
	SendPaymentConfirmation(ctx context.Context, event model.PaymentConfirmedEvent) error
}

// SMTP sends mail through the configured relay.
type SMTP struct {
	client       *gomail.Client
	from         string
	supportEmail string
	companyName  string
}

func NewSMTP(cfg *config.Config) (*SMTP, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTP{
		client:       client,
		from:         cfg.MailFrom,
		supportEmail: cfg.SupportEmail,
		companyName:  cfg.CompanyName,
	}, nil
}

func (s *SMTP) SendPaymentConfirmation(ctx context.Context, event model.PaymentConfirmedEvent) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(event.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject(fmt.Sprintf("Payment Confirmation – Your Ticket for %s", event.EventName))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your payment has been successfully processed.\n\n"+
			"Ticket ID: %s\n"+
			"Total Amount: %s\n"+
			"Event: %s\n\n"+
			"If you have any questions, contact us at %s.\n\n"+
			"Best regards,\nThe %s Team\n\n"+
			"If you did not make this payment, please contact us immediately.\n",
		event.UserName, event.Reference, event.TotalPrice.StringFixed(2),
		event.EventName, s.supportEmail, s.companyName,
	))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogOnly stands in when SMTP is not configured. It records the confirmation
// instead of delivering it, so local setups work without a relay.
type LogOnly struct{}

func (LogOnly) SendPaymentConfirmation(ctx context.Context, event model.PaymentConfirmedEvent) error {
	slog.InfoContext(ctx, "mail delivery disabled, logging confirmation",
		"ticket", event.Reference,
		"recipient", event.Email,
		"event", event.EventName,
	)
	return nil
}
