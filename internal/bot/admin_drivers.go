package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/drivers"
	"github.com/bncabs/payroll-bot/internal/domain/users"
)

// showDriversMenu — ростер с тумблерами проживания/активности.
func (b *Bot) showDriversMenu(ctx context.Context, chatID int64) {
	list, err := b.drivers.List(ctx, false)
	if err != nil {
		b.log.Error("list drivers", "err", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("Drivers:\n")
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, d := range list {
		room := "—"
		if d.RoomRent {
			room = "room rent ₹50/day"
		}
		fmt.Fprintf(&sb, "%s %s (%s)\n", badge(d.Active), d.Name, room)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 "+d.Name, fmt.Sprintf("drv:room:%d", d.ID)),
			tgbotapi.NewInlineKeyboardButtonData(badge(d.Active), fmt.Sprintf("drv:active:%d", d.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🔑 PIN", fmt.Sprintf("drv:pin:%d", d.ID)),
		))
	}
	if len(list) == 0 {
		sb.WriteString("(empty)\n")
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Add driver", "drv:add"),
	))
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateAdmDrvMenu, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	b.send(m)
}

func (b *Bot) cbDriverAdd(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	_ = b.states.Set(ctx, chatID, dialog.StateAdmDrvName, dialog.Payload{})
	b.editTextAndClear(chatID, cb.Message.MessageID, "Driver name:")
}

// Анкета нового водителя: имя → отец → телефон → права → проживание → PIN.
func (b *Bot) stateDriverName(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Name cannot be empty."))
		return
	}
	st.Payload["name"] = name
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvFather, st.Payload)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Father's name (or «-»):"))
}

func (b *Bot) stateDriverFather(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["father"] = dashEmpty(msg.Text)
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvMobile, st.Payload)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Mobile number (or «-»):"))
}

func (b *Bot) stateDriverMobile(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["mobile"] = dashEmpty(msg.Text)
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvLicence, st.Payload)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Licence number (or «-»):"))
}

func (b *Bot) stateDriverLicence(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["licence"] = dashEmpty(msg.Text)
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvEmail, st.Payload)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Email (or «-»):"))
}

func (b *Bot) stateDriverEmail(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["email"] = dashEmpty(msg.Text)
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvAadhar, st.Payload)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Aadhar number (or «-»):"))
}

func (b *Bot) stateDriverAadhar(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["aadhar"] = dashEmpty(msg.Text)
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvAddress, st.Payload)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Address (or «-»):"))
}

func (b *Bot) stateDriverAddress(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["address"] = dashEmpty(msg.Text)
	_ = b.states.Set(ctx, msg.Chat.ID, dialog.StateAdmDrvRoom, st.Payload)
	m := tgbotapi.NewMessage(msg.Chat.ID, "Company room rent (₹50/day)?")
	m.ReplyMarkup = yesNoKeyboard("drv:room:new")
	b.send(m)
}

func (b *Bot) cbDriverRoomNew(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, yes bool) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	st.Payload["room_rent"] = yes
	_ = b.states.Set(ctx, chatID, dialog.StateAdmDrvPIN, st.Payload)
	b.editTextAndClear(chatID, cb.Message.MessageID, "PIN for the driver's login (4-6 digits):")
}

func (b *Bot) stateDriverPIN(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	pin := strings.TrimSpace(msg.Text)
	if len(pin) < 4 || len(pin) > 6 {
		b.send(tgbotapi.NewMessage(chatID, "PIN must be 4-6 digits."))
		return
	}

	name, _ := dialog.GetString(st.Payload, "name")
	father, _ := dialog.GetString(st.Payload, "father")
	mobile, _ := dialog.GetString(st.Payload, "mobile")
	licence, _ := dialog.GetString(st.Payload, "licence")
	email, _ := dialog.GetString(st.Payload, "email")
	aadhar, _ := dialog.GetString(st.Payload, "aadhar")
	address, _ := dialog.GetString(st.Payload, "address")
	roomRent, _ := st.Payload["room_rent"].(bool)

	// если существующая учётка — payload шёл через JSON и bool стал bool, ок;
	// отдельный target_user ведёт в смену PIN без создания водителя
	if targetID, ok := dialog.GetInt64(st.Payload, "target_user"); ok && targetID > 0 {
		hash, err := users.HashPIN(pin)
		if err != nil {
			b.log.Error("hash pin", "err", err)
			return
		}
		if err := b.users.SetPINHash(ctx, targetID, hash); err != nil {
			b.log.Error("set pin", "err", err, "user_id", targetID)
			b.send(tgbotapi.NewMessage(chatID, "Could not change the PIN."))
			return
		}
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "PIN changed ✅"))
		return
	}

	driverID, err := b.drivers.Create(ctx, drivers.Driver{
		Name:          name,
		FatherName:    father,
		Mobile:        mobile,
		Email:         email,
		LicenceNumber: licence,
		AadharNumber:  aadhar,
		Address:       address,
		RoomRent:      roomRent,
	})
	if err != nil {
		b.log.Error("create driver", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not create the driver (duplicate name?)."))
		return
	}
	hash, err := users.HashPIN(pin)
	if err != nil {
		b.log.Error("hash pin", "err", err)
		return
	}
	if _, err := b.users.CreateDriverUser(ctx, name, driverID, hash); err != nil {
		b.log.Error("create driver account", "err", err, "driver_id", driverID)
		b.send(tgbotapi.NewMessage(chatID, "Driver saved, but the login account failed."))
		return
	}

	_ = b.states.Reset(ctx, chatID)
	b.log.Info("driver added", "driver_id", driverID, "name", name)
	b.send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("Driver %s added ✅ They can now /start the bot and log in with the PIN.", name)))
	b.showDriversMenu(ctx, chatID)
}

func (b *Bot) cbDriverToggleRoom(ctx context.Context, cb *tgbotapi.CallbackQuery, driverID int64) {
	chatID := cb.Message.Chat.ID
	d, err := b.drivers.GetByID(ctx, driverID)
	if err != nil || d == nil {
		_ = b.answerCallback(cb, "Driver not found", true)
		return
	}
	if err := b.drivers.SetRoomRent(ctx, driverID, !d.RoomRent); err != nil {
		b.log.Error("toggle room rent", "err", err, "driver_id", driverID)
		return
	}
	_ = b.answerCallback(cb, "Room rent updated", false)
	b.showDriversMenu(ctx, chatID)
}

func (b *Bot) cbDriverToggleActive(ctx context.Context, cb *tgbotapi.CallbackQuery, driverID int64) {
	chatID := cb.Message.Chat.ID
	d, err := b.drivers.GetByID(ctx, driverID)
	if err != nil || d == nil {
		_ = b.answerCallback(cb, "Driver not found", true)
		return
	}
	if err := b.drivers.SetActive(ctx, driverID, !d.Active); err != nil {
		b.log.Error("toggle driver active", "err", err, "driver_id", driverID)
		return
	}
	_ = b.answerCallback(cb, "Status updated", false)
	b.showDriversMenu(ctx, chatID)
}

// cbDriverResetPIN — смена PIN существующей учётки.
func (b *Bot) cbDriverResetPIN(ctx context.Context, cb *tgbotapi.CallbackQuery, driverID int64) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	accounts, err := b.users.ListDrivers(ctx)
	if err != nil {
		b.log.Error("list driver accounts", "err", err)
		return
	}
	var target *users.User
	for i := range accounts {
		if accounts[i].DriverID != nil && *accounts[i].DriverID == driverID {
			target = &accounts[i]
			break
		}
	}
	if target == nil {
		b.send(tgbotapi.NewMessage(chatID, "This driver has no login account."))
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateAdmDrvPIN,
		dialog.Payload{"target_user": float64(target.ID)})
	b.editTextAndClear(chatID, cb.Message.MessageID, "New PIN (4-6 digits):")
}

func dashEmpty(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}
