package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
	"github.com/bncabs/payroll-bot/internal/domain/users"
	"github.com/bncabs/payroll-bot/internal/infra/metrics"
)

// entrySteps — числовые шаги мастера ввода, в порядке опроса.
// Ключи совпадают с именами в payload и с полями формы правки.
var entrySteps = []struct {
	state  dialog.State
	key    string
	prompt string
}{
	{dialog.StateEntryEarnings, "earnings", "Uber earnings:"},
	{dialog.StateEntryCash, "cash_collection", "Cash collected:"},
	{dialog.StateEntryOffEarnings, "offline_earnings", "Offline earnings (0 if none):"},
	{dialog.StateEntryOffCash, "offline_cash", "Offline cash (0 if none):"},
	{dialog.StateEntryTrips, "trips", "Trips:"},
	{dialog.StateEntryToll, "toll", "Toll:"},
	{dialog.StateEntryCNG, "cng", "CNG:"},
	{dialog.StateEntryPetrol, "petrol", "Petrol:"},
	{dialog.StateEntryOther, "other_expenses", "Other expenses:"},
	{dialog.StateEntryLoginHours, "login_hours", "Login hours:"},
	{dialog.StateEntryOpening, "opening_balance", "Opening balance:"},
}

func entryStepIndex(s dialog.State) int {
	for i, step := range entrySteps {
		if step.state == s {
			return i
		}
	}
	return -1
}

func (b *Bot) startNewEntry(ctx context.Context, chatID int64, u *users.User) {
	if u == nil || u.Role != users.RoleDriver || u.DriverID == nil {
		b.send(tgbotapi.NewMessage(chatID, "Only logged-in drivers can add entries."))
		return
	}
	list, err := b.vehicles.List(ctx, true)
	if err != nil {
		b.log.Error("list vehicles", "err", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No vehicles in the fleet yet, ask the admin."))
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateEntryPickVehicle, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Which vehicle did you drive?")
	m.ReplyMarkup = vehicleKeyboard(list, "entry:veh")
	b.send(m)
}

func (b *Bot) cbEntryVehicle(ctx context.Context, cb *tgbotapi.CallbackQuery, vehicleID int64) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	v, err := b.vehicles.GetByID(ctx, vehicleID)
	if err != nil || v == nil {
		b.send(tgbotapi.NewMessage(chatID, "Vehicle not found, start over."))
		return
	}
	p := dialog.Payload{"vehicle_id": float64(v.ID), "vehicle": v.Number}
	_ = b.states.Set(ctx, chatID, dialog.StateEntryDate, p)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", "entry:date:today"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Vehicle: "+v.Number+"\nEntry date? Type YYYY-MM-DD or tap Today.", kb)
	b.send(edit)
}

func (b *Bot) cbEntryDateToday(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	now := time.Now().UTC()
	st.Payload["date"] = now.Format("2006-01-02")
	b.askEntryStep(ctx, chatID, 0, st.Payload)
}

func (b *Bot) stateEntryDate(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	d, err := parseUserDate(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Bad date: "+err.Error()))
		return
	}
	st.Payload["date"] = d.Format("2006-01-02")
	b.askEntryStep(ctx, chatID, 0, st.Payload)
}

func (b *Bot) askEntryStep(ctx context.Context, chatID int64, idx int, p dialog.Payload) {
	step := entrySteps[idx]
	_ = b.states.Set(ctx, chatID, step.state, p)
	m := tgbotapi.NewMessage(chatID, step.prompt)
	m.ReplyMarkup = navKeyboard(idx > 0, true)
	b.send(m)
}

// stateEntryAmount — общий обработчик всех числовых шагов мастера.
func (b *Bot) stateEntryAmount(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item, idx int) {
	chatID := msg.Chat.ID
	v, err := parseAmount(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Enter a non-negative number."))
		return
	}
	st.Payload[entrySteps[idx].key] = v

	if idx+1 < len(entrySteps) {
		b.askEntryStep(ctx, chatID, idx+1, st.Payload)
		return
	}
	b.showEntryPreview(ctx, chatID, msg.From.ID, st.Payload)
}

// buildInputs собирает сырые поля из payload; проживание добавляется
// снаружи по флагу водителя.
func buildInputs(p dialog.Payload, roomRent float64) payroll.Inputs {
	f := func(key string) float64 {
		v, _ := dialog.GetFloat(p, key)
		return v
	}
	return payroll.Inputs{
		Earnings:        f("earnings"),
		CashCollection:  f("cash_collection"),
		OfflineEarnings: f("offline_earnings"),
		OfflineCash:     f("offline_cash"),
		Trips:           int(f("trips")),
		Toll:            f("toll"),
		CNG:             f("cng"),
		Petrol:          f("petrol"),
		OtherExpenses:   f("other_expenses"),
		LoginHours:      f("login_hours"),
		OpeningBalance:  f("opening_balance"),
		RoomRent:        roomRent,
	}
}

func (b *Bot) showEntryPreview(ctx context.Context, chatID, tgID int64, p dialog.Payload) {
	u, _ := b.users.GetByTelegramID(ctx, tgID)
	if u == nil || u.DriverID == nil {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Session lost, send /start again."))
		return
	}
	d, err := b.drivers.GetByID(ctx, *u.DriverID)
	if err != nil || d == nil {
		b.log.Error("driver profile missing", "driver_id", *u.DriverID, "err", err)
		return
	}

	in := buildInputs(p, d.RoomRentCharge())
	out := payroll.Derive(in)
	date, _ := dialog.GetString(p, "date")
	vehicle, _ := dialog.GetString(p, "vehicle")

	var sb strings.Builder
	sb.WriteString("Check your entry:\n")
	fmt.Fprintf(&sb, "Date: %s  Vehicle: %s\n", date, vehicle)
	fmt.Fprintf(&sb, "Earnings: %s  Cash: %s\n", payroll.FormatINR(in.Earnings), payroll.FormatINR(in.CashCollection))
	fmt.Fprintf(&sb, "Offline: %s / %s\n", payroll.FormatINR(in.OfflineEarnings), payroll.FormatINR(in.OfflineCash))
	fmt.Fprintf(&sb, "Trips: %d  Login: %.1f h  Toll: %s\n", in.Trips, in.LoginHours, payroll.FormatINR(in.Toll))
	fmt.Fprintf(&sb, "CNG: %s  Petrol: %s  Other: %s\n", payroll.FormatINR(in.CNG), payroll.FormatINR(in.Petrol), payroll.FormatINR(in.OtherExpenses))
	fmt.Fprintf(&sb, "Opening balance: %s  Room rent: %s\n", payroll.FormatINR(in.OpeningBalance), payroll.FormatINR(in.RoomRent))
	sb.WriteString("—\n")
	fmt.Fprintf(&sb, "Pay %%: %d\nSalary: %s\nPayable: %s\nP&L: %s\n",
		out.PayPercent, payroll.FormatINR(out.Salary), payroll.FormatINR(out.Payable), payroll.FormatINR(out.PL))

	_ = b.states.Set(ctx, chatID, dialog.StateEntryConfirm, p)
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = confirmEntryKeyboard()
	b.send(m)
}

func (b *Bot) cbEntrySave(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	tgID := cb.From.ID

	u, _ := b.users.GetByTelegramID(ctx, tgID)
	if u == nil || u.DriverID == nil {
		_ = b.answerCallback(cb, "Session lost", true)
		return
	}
	d, err := b.drivers.GetByID(ctx, *u.DriverID)
	if err != nil || d == nil {
		_ = b.answerCallback(cb, "Driver profile missing", true)
		return
	}
	dateStr, _ := dialog.GetString(st.Payload, "date")
	date, err := parseUserDate(dateStr)
	if err != nil {
		_ = b.answerCallback(cb, "Bad date in session", true)
		return
	}
	vehicleID, _ := dialog.GetInt64(st.Payload, "vehicle_id")

	e := entries.Entry{
		Date:      date,
		DriverID:  d.ID,
		VehicleID: vehicleID,
	}
	e.Inputs = buildInputs(st.Payload, d.RoomRentCharge())

	if _, err := b.entries.Create(ctx, &e); err != nil {
		b.log.Error("save entry", "err", err)
		_ = b.answerCallback(cb, "Could not save, try again", true)
		return
	}
	metrics.EntriesSaved.Inc()
	b.log.Info("entry saved", "entry_id", e.ID, "driver_id", d.ID, "date", dateStr)

	_ = b.answerCallback(cb, "Saved", false)
	_ = b.states.Reset(ctx, chatID)
	b.editTextAndClear(chatID, cb.Message.MessageID,
		fmt.Sprintf("Entry saved ✅\nSalary: %s\nPayable: %s",
			payroll.FormatINR(e.Salary), payroll.FormatINR(e.Payable)))
}

/*** МОИ ЗАПИСИ / ПРАВКА ***/

func (b *Bot) showMyEntries(ctx context.Context, chatID int64, u *users.User) {
	if u == nil || u.DriverID == nil {
		b.send(tgbotapi.NewMessage(chatID, "Log in first with /start."))
		return
	}
	list, err := b.entries.ListByDriver(ctx, *u.DriverID, 7)
	if err != nil {
		b.log.Error("list entries", "err", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No entries yet."))
		return
	}

	var sb strings.Builder
	sb.WriteString("Your latest entries:\n")
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, e := range list {
		fmt.Fprintf(&sb, "%s  %s — payable %s, salary %s (%d%%)\n",
			e.DateKey(), e.Vehicle, payroll.FormatINR(e.Payable), payroll.FormatINR(e.Salary), e.PayPercent)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("✏️ %s %s", e.DateKey(), e.Vehicle),
				fmt.Sprintf("entry:edit:%d", e.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("entry:del:%d", e.ID)),
		))
	}
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	b.send(m)
}

// editableFields — какие сырые поля можно править; производные пересчитает Update.
var editableFields = []struct{ key, label string }{
	{"earnings", "Earnings"},
	{"cash_collection", "Cash"},
	{"offline_earnings", "Offline earnings"},
	{"offline_cash", "Offline cash"},
	{"trips", "Trips"},
	{"toll", "Toll"},
	{"cng", "CNG"},
	{"petrol", "Petrol"},
	{"other_expenses", "Other expenses"},
	{"login_hours", "Login hours"},
	{"opening_balance", "Opening balance"},
}

func (b *Bot) cbEntryEditPick(ctx context.Context, cb *tgbotapi.CallbackQuery, entryID int64) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i := 0; i < len(editableFields); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(editableFields[i].label,
				fmt.Sprintf("entry:field:%d:%s", entryID, editableFields[i].key)),
		}
		if i+1 < len(editableFields) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(editableFields[i+1].label,
				fmt.Sprintf("entry:field:%d:%s", entryID, editableFields[i+1].key)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateEntryEditPick, dialog.Payload{"entry_id": float64(entryID)})
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Which field to change?", tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows})
	b.send(edit)
}

func (b *Bot) cbEntryEditField(ctx context.Context, cb *tgbotapi.CallbackQuery, entryID int64, field string) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	_ = b.states.Set(ctx, chatID, dialog.StateEntryEditValue,
		dialog.Payload{"entry_id": float64(entryID), "field": field})
	b.editTextAndClear(chatID, cb.Message.MessageID, "New value:")
}

func (b *Bot) stateEntryEditValue(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	v, err := parseAmount(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Enter a non-negative number."))
		return
	}
	entryID, _ := dialog.GetInt64(st.Payload, "entry_id")
	field, _ := dialog.GetString(st.Payload, "field")

	e, err := b.entries.GetByID(ctx, entryID)
	if err != nil || e == nil {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Entry not found."))
		return
	}

	u, _ := b.users.GetByTelegramID(ctx, msg.From.ID)
	if !canTouchEntry(u, e) {
		b.send(tgbotapi.NewMessage(chatID, "That entry is not yours."))
		return
	}

	if !setEntryField(e, field, v) {
		b.send(tgbotapi.NewMessage(chatID, "Unknown field."))
		return
	}
	if err := b.entries.Update(ctx, e); err != nil {
		b.log.Error("update entry", "err", err, "entry_id", entryID)
		b.send(tgbotapi.NewMessage(chatID, "Could not save the change."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Updated ✅\nSalary: %s\nPayable: %s\nP&L: %s",
		payroll.FormatINR(e.Salary), payroll.FormatINR(e.Payable), payroll.FormatINR(e.PL))))
}

// canTouchEntry — водитель правит и удаляет только свои записи, админ — любые.
func canTouchEntry(u *users.User, e *entries.Entry) bool {
	if u == nil || e == nil {
		return false
	}
	if u.Role == users.RoleAdmin {
		return true
	}
	return u.DriverID != nil && *u.DriverID == e.DriverID
}

// cbEntryDelete — кнопка 🗑 в списках записей.
func (b *Bot) cbEntryDelete(ctx context.Context, cb *tgbotapi.CallbackQuery, entryID int64) {
	chatID := cb.Message.Chat.ID

	e, err := b.entries.GetByID(ctx, entryID)
	if err != nil || e == nil {
		_ = b.answerCallback(cb, "Entry not found", true)
		return
	}
	u, _ := b.users.GetByTelegramID(ctx, cb.From.ID)
	if !canTouchEntry(u, e) {
		_ = b.answerCallback(cb, "That entry is not yours", true)
		return
	}
	if err := b.entries.Delete(ctx, entryID); err != nil {
		b.log.Error("delete entry", "err", err, "entry_id", entryID)
		_ = b.answerCallback(cb, "Could not delete", true)
		return
	}
	b.log.Info("entry deleted", "entry_id", entryID, "date", e.DateKey(), "driver_id", e.DriverID)
	_ = b.answerCallback(cb, "Deleted", false)
	b.editTextAndClear(chatID, cb.Message.MessageID,
		fmt.Sprintf("Entry %s %s deleted ✅", e.DateKey(), e.Vehicle))
}

func setEntryField(e *entries.Entry, field string, v float64) bool {
	switch field {
	case "earnings":
		e.Earnings = v
	case "cash_collection":
		e.CashCollection = v
	case "offline_earnings":
		e.OfflineEarnings = v
	case "offline_cash":
		e.OfflineCash = v
	case "trips":
		e.Trips = int(v)
	case "toll":
		e.Toll = v
	case "cng":
		e.CNG = v
	case "petrol":
		e.Petrol = v
	case "other_expenses":
		e.OtherExpenses = v
	case "login_hours":
		e.LoginHours = v
	case "opening_balance":
		e.OpeningBalance = v
	default:
		return false
	}
	return true
}

// showRecentEntries — админский обзор последних записей по всему парку.
func (b *Bot) showRecentEntries(ctx context.Context, chatID int64) {
	list, err := b.entries.List(ctx)
	if err != nil {
		b.log.Error("list entries", "err", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No entries in the database."))
		return
	}
	if len(list) > 15 {
		list = list[:15]
	}
	var sb strings.Builder
	sb.WriteString("Latest entries:\n")
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, e := range list {
		fmt.Fprintf(&sb, "%s  %s / %s — earnings %s, payable %s\n",
			e.DateKey(), e.Driver, e.Vehicle,
			payroll.FormatINR(e.Earnings), payroll.FormatINR(e.Payable))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("✏️ %s %s", e.DateKey(), e.Driver),
				fmt.Sprintf("entry:edit:%d", e.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("entry:del:%d", e.ID)),
		))
	}
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	b.send(m)
}
