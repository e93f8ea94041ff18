package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"gamezone/internal/mailer"
	"gamezone/internal/model"
	"gamezone/internal/service"
)

// MailerWorker listens for payment-confirmed events and sends the
// confirmation email. Delivery is best-effort: a failed send is logged and
// the event is dropped, matching the synchronous flow it replaced.
type MailerWorker struct {
	sender   mailer.Sender
	natsConn *nats.Conn
}

func NewMailerWorker(sender mailer.Sender, nc *nats.Conn) *MailerWorker {
	return &MailerWorker{sender: sender, natsConn: nc}
}

// Start subscribes and blocks until ctx is cancelled.
func (w *MailerWorker) Start(ctx context.Context) error {
	// QueueSubscribe: with several API instances running, each confirmation
	// is mailed exactly once.
	sub, err := w.natsConn.QueueSubscribe(service.TopicPaymentConfirmed, "mailer_group", func(m *nats.Msg) {
		w.handleMessage(ctx, m.Data)
	})
	if err != nil {
		return fmt.Errorf("mailer worker: failed to subscribe: %w", err)
	}

	slog.Info("mailer worker is running")

	<-ctx.Done()

	slog.Info("mailer worker shutting down, draining subscription...")
	return sub.Drain()
}

// Stop implements the infrastructure.Server interface (shutdown is via ctx).
func (w *MailerWorker) Stop(ctx context.Context) error {
	return nil
}

func (w *MailerWorker) handleMessage(ctx context.Context, data []byte) {
	var event model.PaymentConfirmedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("mailer worker: failed to unmarshal event", "error", err)
		return
	}

	if err := w.sender.SendPaymentConfirmation(ctx, event); err != nil {
		slog.Error("mailer worker: failed to send confirmation",
			"ticket", event.Reference,
			"recipient", event.Email,
			"error", err,
		)
		return
	}

	slog.Info("confirmation email sent",
		"ticket", event.Reference,
		"recipient", event.Email,
	)
}
