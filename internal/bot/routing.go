package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/users"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Commands:\n/start — log in / show the menu\n/help — this message\n\nDrivers log their day with «New Entry», admins build the weekly summary from the bottom panel."))
	case "cancel":
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Cancelled."))
	default:
		b.send(tgbotapi.NewMessage(chatID, "Unknown command, try /help"))
	}
}

func (b *Bot) isAdmin(ctx context.Context, tgID int64) bool {
	u, _ := b.users.GetByTelegramID(ctx, tgID)
	return u != nil && u.Role == users.RoleAdmin
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID
	st, _ := b.states.Get(ctx, chatID)

	// Нижняя панель водителя
	switch msg.Text {
	case "New Entry":
		u, _ := b.users.GetByTelegramID(ctx, tgID)
		b.startNewEntry(ctx, chatID, u)
		return
	case "My Entries":
		u, _ := b.users.GetByTelegramID(ctx, tgID)
		b.showMyEntries(ctx, chatID, u)
		return
	}

	// Нижняя панель админа
	if b.isAdmin(ctx, tgID) {
		switch msg.Text {
		case "Weekly Summary":
			b.showReportMenu(ctx, chatID, st.Payload)
			return
		case "Summary":
			b.showSummaryMenu(ctx, chatID, st.Payload)
			return
		case "Export Database":
			b.handleDatabaseExport(ctx, chatID)
			return
		case "Import Database":
			b.startDatabaseImport(ctx, chatID)
			return
		case "Drivers":
			b.showDriversMenu(ctx, chatID)
			return
		case "Vehicles":
			b.showVehiclesMenu(ctx, chatID)
			return
		case "Recent Entries":
			b.showRecentEntries(ctx, chatID)
			return
		}
	}

	// Диалоги (текстовые вводы)
	if idx := entryStepIndex(st.State); idx >= 0 {
		b.stateEntryAmount(ctx, msg, st, idx)
		return
	}

	switch st.State {
	case dialog.StateLoginPIN:
		b.stateLoginPIN(ctx, msg, st)
	case dialog.StateEntryDate:
		b.stateEntryDate(ctx, msg, st)
	case dialog.StateEntryEditValue:
		b.stateEntryEditValue(ctx, msg, st)

	case dialog.StateReportFrom:
		b.stateReportDate(ctx, msg, st, "from")
	case dialog.StateReportTo:
		b.stateReportDate(ctx, msg, st, "to")
	case dialog.StateReportVehicle:
		b.stateReportVehicle(ctx, msg, st)
	case dialog.StateReportTDSVal:
		b.stateReportTDSValue(ctx, msg, st)

	case dialog.StateSumFrom:
		b.stateSummaryDate(ctx, msg, st, "from")
	case dialog.StateSumTo:
		b.stateSummaryDate(ctx, msg, st, "to")

	case dialog.StateAdmDrvName:
		b.stateDriverName(ctx, msg, st)
	case dialog.StateAdmDrvFather:
		b.stateDriverFather(ctx, msg, st)
	case dialog.StateAdmDrvMobile:
		b.stateDriverMobile(ctx, msg, st)
	case dialog.StateAdmDrvLicence:
		b.stateDriverLicence(ctx, msg, st)
	case dialog.StateAdmDrvEmail:
		b.stateDriverEmail(ctx, msg, st)
	case dialog.StateAdmDrvAadhar:
		b.stateDriverAadhar(ctx, msg, st)
	case dialog.StateAdmDrvAddress:
		b.stateDriverAddress(ctx, msg, st)
	case dialog.StateAdmDrvPIN:
		b.stateDriverPIN(ctx, msg, st)

	case dialog.StateAdmVehNumber:
		b.stateVehicleNumber(ctx, msg, st)
	case dialog.StateAdmVehType:
		b.stateVehicleType(ctx, msg, st)

	default:
		b.send(tgbotapi.NewMessage(chatID, "Use the buttons below or /help."))
	}
}

// handleDocument — файлы принимаем только когда их ждём.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	if st.State == dialog.StateDBImportFile && b.isAdmin(ctx, msg.From.ID) {
		b.handleDatabaseImportFile(ctx, chatID, msg)
		return
	}
	b.send(tgbotapi.NewMessage(chatID, "Not expecting a file right now."))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	data := cb.Data
	parts := strings.Split(data, ":")

	// Навигация
	if data == "nav:cancel" {
		_ = b.answerCallback(cb, "Cancelled", false)
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Cancelled.")
		return
	}
	if data == "nav:back" {
		_ = b.answerCallback(cb, "", false)
		if idx := entryStepIndex(st.State); idx > 0 {
			b.askEntryStep(ctx, chatID, idx-1, st.Payload)
			return
		}
		if st.State == dialog.StateEntryConfirm {
			b.askEntryStep(ctx, chatID, len(entrySteps)-1, st.Payload)
			return
		}
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Cancelled.")
		return
	}

	switch parts[0] {
	case "login":
		// login:user:<id>
		if len(parts) == 3 && parts[1] == "user" {
			if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
				b.cbLoginUser(ctx, cb, id)
			}
		}
		return

	case "entry":
		b.routeEntryCallback(ctx, cb, st, parts)
		return

	case "rep":
		if !b.isAdmin(ctx, cb.From.ID) {
			_ = b.answerCallback(cb, "Admins only", true)
			return
		}
		b.routeReportCallback(ctx, cb, st, parts)
		return

	case "sum":
		if !b.isAdmin(ctx, cb.From.ID) {
			_ = b.answerCallback(cb, "Admins only", true)
			return
		}
		b.routeSummaryCallback(ctx, cb, st, parts)
		return

	case "tds":
		// tds:pick:<idx>
		if !b.isAdmin(ctx, cb.From.ID) {
			_ = b.answerCallback(cb, "Admins only", true)
			return
		}
		if len(parts) == 3 && parts[1] == "pick" {
			if idx, err := strconv.Atoi(parts[2]); err == nil {
				b.cbReportTDSPick(ctx, cb, st, idx)
			}
		}
		return

	case "drv":
		if !b.isAdmin(ctx, cb.From.ID) {
			_ = b.answerCallback(cb, "Admins only", true)
			return
		}
		b.routeDriverCallback(ctx, cb, st, parts)
		return

	case "veh":
		if !b.isAdmin(ctx, cb.From.ID) {
			_ = b.answerCallback(cb, "Admins only", true)
			return
		}
		b.routeVehicleCallback(ctx, cb, parts)
		return
	}

	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) routeEntryCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, parts []string) {
	switch {
	// entry:veh:<id>
	case len(parts) == 3 && parts[1] == "veh":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbEntryVehicle(ctx, cb, id)
		}
	// entry:date:today
	case len(parts) == 3 && parts[1] == "date" && parts[2] == "today":
		b.cbEntryDateToday(ctx, cb, st)
	case len(parts) == 2 && parts[1] == "save":
		b.cbEntrySave(ctx, cb, st)
	// entry:edit:<id>
	case len(parts) == 3 && parts[1] == "edit":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbEntryEditPick(ctx, cb, id)
		}
	// entry:del:<id>
	case len(parts) == 3 && parts[1] == "del":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbEntryDelete(ctx, cb, id)
		}
	// entry:field:<id>:<key>
	case len(parts) == 4 && parts[1] == "field":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbEntryEditField(ctx, cb, id, parts[3])
		}
	}
}

func (b *Bot) routeReportCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, parts []string) {
	if len(parts) != 2 {
		return
	}
	switch parts[1] {
	case "build":
		b.cbReportBuild(ctx, cb, st)
	case "export":
		b.cbReportExport(ctx, cb, st)
	case "from":
		b.cbReportAskDate(ctx, cb, st, "from")
	case "to":
		b.cbReportAskDate(ctx, cb, st, "to")
	case "vehicle":
		b.cbReportAskVehicle(ctx, cb, st)
	case "clear":
		b.cbReportClear(ctx, cb, st)
	case "tds":
		b.cbReportTDSMenu(ctx, cb, st)
	}
}

func (b *Bot) routeSummaryCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, parts []string) {
	if len(parts) != 2 {
		return
	}
	switch parts[1] {
	case "drivers":
		b.cbSummaryBuild(ctx, cb, st, false)
	case "vehicles":
		b.cbSummaryBuild(ctx, cb, st, true)
	case "from":
		b.cbSummaryAskDate(ctx, cb, st, "from")
	case "to":
		b.cbSummaryAskDate(ctx, cb, st, "to")
	case "clear":
		b.cbSummaryClear(ctx, cb, st)
	}
}

func (b *Bot) routeDriverCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, parts []string) {
	switch {
	case len(parts) == 2 && parts[1] == "add":
		b.cbDriverAdd(ctx, cb)
	// drv:room:new:yes|no — анкета нового водителя
	case len(parts) == 4 && parts[1] == "room" && parts[2] == "new":
		b.cbDriverRoomNew(ctx, cb, st, parts[3] == "yes")
	// drv:room:<id> — тумблер проживания
	case len(parts) == 3 && parts[1] == "room":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbDriverToggleRoom(ctx, cb, id)
		}
	case len(parts) == 3 && parts[1] == "active":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbDriverToggleActive(ctx, cb, id)
		}
	case len(parts) == 3 && parts[1] == "pin":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbDriverResetPIN(ctx, cb, id)
		}
	}
}

func (b *Bot) routeVehicleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, parts []string) {
	switch {
	case len(parts) == 2 && parts[1] == "add":
		b.cbVehicleAdd(ctx, cb)
	case len(parts) == 3 && parts[1] == "assign":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbVehicleAssign(ctx, cb, id)
		}
	// veh:setdrv:<vehicle>:<driver> (driver 0 — снять назначение)
	case len(parts) == 4 && parts[1] == "setdrv":
		vid, err1 := strconv.ParseInt(parts[2], 10, 64)
		did, err2 := strconv.ParseInt(parts[3], 10, 64)
		if err1 == nil && err2 == nil {
			b.cbVehicleSetDriver(ctx, cb, vid, did)
		}
	case len(parts) == 3 && parts[1] == "active":
		if id, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			b.cbVehicleToggleActive(ctx, cb, id)
		}
	}
}
