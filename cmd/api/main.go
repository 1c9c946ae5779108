package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "roamvista/internal/adapters/http_server"
	"roamvista/internal/adapters/notify"
	"roamvista/internal/adapters/observability"
	redisad "roamvista/internal/adapters/redis"
	"roamvista/internal/app"
	"roamvista/internal/shared"
	mysqlrepo "roamvista/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	dispatcher := notify.NewDispatcher(cfg.WebhookURL, cfg.WebhookRPS, 64)
	dispatcher.Start()
	defer dispatcher.Close()

	// Without a store DSN the API still serves, but every data endpoint
	// reports "not configured" instead of attempting a call.
	handlers := &server.Handlers{}
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")

		repo := mysqlrepo.New(db)
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

		handlers.Inquiries = app.NewInquiryService(repo, dispatcher)
		handlers.Stats = app.NewStatsService(repo)
		handlers.Reviews = app.NewReviewService(repo, repo, cache, cfg.CacheTTL, cfg.AdminEmail)
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
