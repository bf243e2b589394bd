package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/users"
)

// handleStart — /start: чат из конфига становится админом автоматически,
// остальные входят как водители по PIN.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID

	if tgID == b.adminChat {
		name := msg.From.FirstName
		if name == "" {
			name = "Admin"
		}
		if _, err := b.users.EnsureAdmin(ctx, tgID, name); err != nil {
			b.log.Error("ensure admin", "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Could not set up the admin profile."))
			return
		}
		m := tgbotapi.NewMessage(chatID, "Hello, admin! Use the buttons below to manage the fleet.")
		m.ReplyMarkup = adminReplyKeyboard()
		b.send(m)
		return
	}

	u, _ := b.users.GetByTelegramID(ctx, tgID)
	if u != nil {
		switch u.Role {
		case users.RoleAdmin:
			m := tgbotapi.NewMessage(chatID, "Hello, admin! Use the buttons below to manage the fleet.")
			m.ReplyMarkup = adminReplyKeyboard()
			b.send(m)
		case users.RoleDriver:
			m := tgbotapi.NewMessage(chatID, "Welcome back, "+u.Name+"! Log your day with «New Entry».")
			m.ReplyMarkup = driverReplyKeyboard()
			b.send(m)
		}
		return
	}

	b.startDriverLogin(ctx, chatID)
}

func (b *Bot) startDriverLogin(ctx context.Context, chatID int64) {
	list, err := b.users.ListDrivers(ctx)
	if err != nil {
		b.log.Error("list driver accounts", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Something went wrong, try again later."))
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No driver accounts yet. Ask the admin to add you."))
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateLoginPickName, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Pick your name to log in:")
	m.ReplyMarkup = loginKeyboard(list)
	b.send(m)
}

func (b *Bot) cbLoginUser(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	_ = b.states.Set(ctx, chatID, dialog.StateLoginPIN, dialog.Payload{"user_id": float64(userID)})
	b.editTextAndClear(chatID, cb.Message.MessageID, "Enter your PIN:")
}

func (b *Bot) stateLoginPIN(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	userID, ok := dialog.GetInt64(st.Payload, "user_id")
	if !ok {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Login session expired, send /start again."))
		return
	}

	list, err := b.users.ListDrivers(ctx)
	if err != nil {
		b.log.Error("list driver accounts", "err", err)
		return
	}
	var account *users.User
	for i := range list {
		if list[i].ID == userID {
			account = &list[i]
			break
		}
	}
	if account == nil || !users.CheckPIN(account.PINHash, msg.Text) {
		b.send(tgbotapi.NewMessage(chatID, "Wrong PIN, try again:"))
		return
	}

	if err := b.users.LinkTelegram(ctx, account.ID, msg.From.ID); err != nil {
		b.log.Error("link telegram", "err", err, "user_id", account.ID)
		b.send(tgbotapi.NewMessage(chatID, "Could not finish the login, try again."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.log.Info("driver logged in", "user_id", account.ID, "chat_id", chatID)

	m := tgbotapi.NewMessage(chatID, "You are in, "+account.Name+"! Log your day with «New Entry».")
	m.ReplyMarkup = driverReplyKeyboard()
	b.send(m)
}
