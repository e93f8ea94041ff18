package infrastructure

import (
	"context"
	"log/slog"

	"gamezone/internal/config"
	"gamezone/internal/mailer"
	"gamezone/internal/repository"
	"gamezone/internal/service"
	transportHTTP "gamezone/internal/transport/http"
	transportNATS "gamezone/internal/transport/nats"
	"gamezone/internal/worker"
)

// Bootstrap initialises all dependencies from config and wires up the
// application. Returns the App, a cleanup function, or an error.
func Bootstrap(ctx context.Context) (*App, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := connectPostgres(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	rdb, err := connectRedis(cfg.RedisAddr())
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, func() {
		db.Close()
		_ = rdb.Close()
	})

	nc, err := connectNats(cfg.NatsAddr())
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, nc.Close)

	// ── Storage ────────────────────────────────────────────────────────────
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(rdb)
	ledger := repository.NewTransactionRepo(db)
	tickets := repository.NewTicketRepo(db)
	newsletter := repository.NewNewsletterRepo(db)

	// ── Services ───────────────────────────────────────────────────────────
	bus := transportNATS.NewBus(nc)
	authSvc := service.NewAuth(users, tokens, []byte(cfg.JWTSecret), cfg.TokenValidity)
	walletSvc := service.NewWallet(users, ledger)
	ticketSvc := service.NewTickets(tickets, bus)
	newsletterSvc := service.NewNewsletter(newsletter)

	// ── Mail delivery ──────────────────────────────────────────────────────
	var sender mailer.Sender
	if cfg.MailEnabled() {
		sender, err = mailer.NewSMTP(cfg)
		if err != nil {
			return nil, runCleanup(cleanupFns), err
		}
	} else {
		slog.Warn("SMTP not configured, confirmation emails will only be logged")
		sender = mailer.LogOnly{}
	}

	servers := []Server{
		transportHTTP.NewServer(cfg.ApiAddr(), authSvc, walletSvc, ticketSvc, newsletterSvc),
		worker.NewMailerWorker(sender, nc),
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// runCleanup returns a single function that calls all cleanup functions in reverse order.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
