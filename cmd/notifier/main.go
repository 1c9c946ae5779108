package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"roamvista/internal/adapters/email"
	"roamvista/internal/adapters/observability"
	"roamvista/internal/domain"
	"roamvista/internal/shared"
	mysqlrepo "roamvista/internal/storage/mysql"
)

// The notifier drains the durable notification_queue table: pending rows are
// fetched on an interval, fanned out over a bounded worker pool, and marked
// sent or failed. Rows survive worker downtime by design.
func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required for the notifier")
	}

	log.Info().
		Dur("interval", cfg.NotifyInterval).
		Int("workers", cfg.NotifyWorkers).
		Int("batch", cfg.NotifyBatch).
		Msg("notifier starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sender := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if !sender.Enabled() {
		log.Warn().Msg("SMTP not configured; notifications will be logged only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.NotifyInterval)
	defer ticker.Stop()

	for {
		drainPending(ctx, repo, sender, cfg.NotifyWorkers, cfg.NotifyBatch)
		select {
		case <-ctx.Done():
			log.Info().Msg("notifier stopping")
			return
		case <-ticker.C:
		}
	}
}

func drainPending(ctx context.Context, repo *mysqlrepo.Repo, sender *email.Sender, workers, batch int) {
	pending, err := repo.PendingNotifications(ctx, batch)
	if err != nil {
		log.Error().Err(err).Msg("fetch pending notifications failed")
		return
	}
	if len(pending) == 0 {
		return
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, n := range pending {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			return
		}
		wg.Add(1)
		go func(n domain.Notification) {
			defer wg.Done()
			defer sem.Release(1)
			deliver(ctx, repo, sender, n)
		}(n)
	}
	wg.Wait()
}

func deliver(ctx context.Context, repo *mysqlrepo.Repo, sender *email.Sender, n domain.Notification) {
	if !sender.Enabled() {
		log.Info().
			Int64("id", n.ID).
			Str("type", n.Type).
			Str("recipient", n.RecipientEmail).
			Msg("smtp disabled, marking notification sent")
		if err := repo.MarkNotificationSent(ctx, n.ID); err != nil {
			log.Error().Err(err).Int64("id", n.ID).Msg("mark sent failed")
		}
		return
	}

	if err := sender.Send(n.RecipientEmail, n.Title, n.Message); err != nil {
		observability.ObserveNotification("email", "error")
		log.Warn().Err(err).Int64("id", n.ID).Msg("notification send failed")
		if err := repo.MarkNotificationFailed(ctx, n.ID); err != nil {
			log.Error().Err(err).Int64("id", n.ID).Msg("mark failed failed")
		}
		return
	}

	observability.ObserveNotification("email", "ok")
	log.Info().Int64("id", n.ID).Str("recipient", n.RecipientEmail).Msg("notification sent")
	if err := repo.MarkNotificationSent(ctx, n.ID); err != nil {
		log.Error().Err(err).Int64("id", n.ID).Msg("mark sent failed")
	}
}
