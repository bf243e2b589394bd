package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/bncabs/payroll-bot/internal/bot"
	"github.com/bncabs/payroll-bot/internal/config"
	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/drivers"
	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/users"
	"github.com/bncabs/payroll-bot/internal/domain/vehicles"
	"github.com/bncabs/payroll-bot/internal/infra/db"
	httpx "github.com/bncabs/payroll-bot/internal/infra/http"
	"github.com/bncabs/payroll-bot/internal/infra/logger"
)

func runMigrations(dsn string, log *slog.Logger) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load() // .env опционален, боевые значения идут через ENV

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN, log); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool.Ping)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram connected", "bot", api.Self.UserName)

	b := bot.New(api, log,
		users.NewRepo(pool), dialog.NewRepo(pool),
		drivers.NewRepo(pool), vehicles.NewRepo(pool),
		entries.NewRepo(pool), cfg.Telegram.AdminChatID)

	if err := b.Run(ctx, cfg.Telegram.PollTimeout); err != nil && ctx.Err() == nil {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
