package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/drivers"
	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/users"
	"github.com/bncabs/payroll-bot/internal/domain/vehicles"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	users     *users.Repo
	states    *dialog.Repo
	drivers   *drivers.Repo
	vehicles  *vehicles.Repo
	entries   *entries.Repo
	adminChat int64
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	usersRepo *users.Repo, statesRepo *dialog.Repo,
	driversRepo *drivers.Repo, vehiclesRepo *vehicles.Repo,
	entriesRepo *entries.Repo, adminChatID int64) *Bot {

	return &Bot{
		api: api, log: log, users: usersRepo, states: statesRepo,
		drivers: driversRepo, vehicles: vehiclesRepo,
		entries: entriesRepo, adminChat: adminChatID,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}
