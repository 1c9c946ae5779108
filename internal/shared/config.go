package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	AdminEmail string
	WebhookURL string
	WebhookRPS int

	CacheTTL time.Duration

	NotifyInterval time.Duration
	NotifyWorkers  int
	NotifyBatch    int

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func Load() Config {
	// Best-effort .env for local development.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		AdminEmail: env("ADMIN_EMAIL", "bookings@roamvista.travel"),
		WebhookURL: env("NOTIFY_WEBHOOK_URL", ""),
		WebhookRPS: atoi("NOTIFY_WEBHOOK_RPS", 5),

		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		NotifyInterval: time.Duration(atoi("NOTIFY_INTERVAL_SECONDS", 30)) * time.Second,
		NotifyWorkers:  atoi("NOTIFY_WORKERS", 4),
		NotifyBatch:    atoi("NOTIFY_BATCH", 50),

		SMTPHost: env("SMTP_HOST", ""),
		SMTPPort: env("SMTP_PORT", "587"),
		SMTPUser: env("SMTP_USER", ""),
		SMTPPass: env("SMTP_PASSWORD", ""),
		SMTPFrom: env("SMTP_FROM", ""),
	}
	if c.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN is empty; data endpoints will report not configured")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
