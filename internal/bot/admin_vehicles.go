package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
)

func (b *Bot) showVehiclesMenu(ctx context.Context, chatID int64) {
	list, err := b.vehicles.List(ctx, false)
	if err != nil {
		b.log.Error("list vehicles", "err", err)
		return
	}

	names := map[int64]string{}
	if roster, err := b.drivers.List(ctx, false); err == nil {
		for _, d := range roster {
			names[d.ID] = d.Name
		}
	}

	var sb strings.Builder
	sb.WriteString("Vehicles:\n")
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, v := range list {
		assigned := "unassigned"
		if v.AssignedDriverID != nil {
			if n, ok := names[*v.AssignedDriverID]; ok {
				assigned = n
			}
		}
		fmt.Fprintf(&sb, "%s %s (%s) — %s\n", badge(v.Active), v.Number, v.Type, assigned)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 "+v.Number, fmt.Sprintf("veh:assign:%d", v.ID)),
			tgbotapi.NewInlineKeyboardButtonData(badge(v.Active), fmt.Sprintf("veh:active:%d", v.ID)),
		))
	}
	if len(list) == 0 {
		sb.WriteString("(empty)\n")
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Add vehicle", "veh:add"),
	))
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateAdmVehMenu, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	b.send(m)
}

func (b *Bot) cbVehicleAdd(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	_ = b.states.Set(ctx, chatID, dialog.StateAdmVehNumber, dialog.Payload{})
	b.editTextAndClear(chatID, cb.Message.MessageID, "Vehicle number (e.g. KA01AB1234):")
}

func (b *Bot) stateVehicleNumber(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	number := strings.ToUpper(strings.TrimSpace(msg.Text))
	if number == "" {
		b.send(tgbotapi.NewMessage(chatID, "Number cannot be empty."))
		return
	}
	if v, err := b.vehicles.GetByNumber(ctx, number); err == nil && v != nil {
		b.send(tgbotapi.NewMessage(chatID, "This vehicle already exists."))
		return
	}
	st.Payload["number"] = number
	_ = b.states.Set(ctx, chatID, dialog.StateAdmVehType, st.Payload)
	b.send(tgbotapi.NewMessage(chatID, "Vehicle type (sedan / hatchback / suv):"))
}

func (b *Bot) stateVehicleType(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	vtype := strings.ToLower(strings.TrimSpace(msg.Text))
	if vtype == "" {
		vtype = "sedan"
	}
	number, _ := dialog.GetString(st.Payload, "number")

	id, err := b.vehicles.Create(ctx, number, vtype)
	if err != nil {
		b.log.Error("create vehicle", "err", err, "number", number)
		b.send(tgbotapi.NewMessage(chatID, "Could not save the vehicle."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.log.Info("vehicle added", "vehicle_id", id, "number", number)
	b.showVehiclesMenu(ctx, chatID)
}

func (b *Bot) cbVehicleAssign(ctx context.Context, cb *tgbotapi.CallbackQuery, vehicleID int64) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	roster, err := b.drivers.List(ctx, true)
	if err != nil {
		b.log.Error("list drivers", "err", err)
		return
	}
	if len(roster) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No active drivers to assign."))
		return
	}
	kb := driverKeyboard(roster, fmt.Sprintf("veh:setdrv:%d", vehicleID))
	// добавляем «снять назначение» перед nav-строкой
	unassign := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚫 Unassign", fmt.Sprintf("veh:setdrv:%d:0", vehicleID)),
	)
	kb.InlineKeyboard = append(kb.InlineKeyboard[:len(kb.InlineKeyboard)-1],
		unassign, kb.InlineKeyboard[len(kb.InlineKeyboard)-1])

	_ = b.states.Set(ctx, chatID, dialog.StateAdmVehAssign, dialog.Payload{"vehicle_id": float64(vehicleID)})
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, "Assign to:", kb)
	b.send(edit)
}

func (b *Bot) cbVehicleSetDriver(ctx context.Context, cb *tgbotapi.CallbackQuery, vehicleID, driverID int64) {
	chatID := cb.Message.Chat.ID
	var ptr *int64
	if driverID > 0 {
		ptr = &driverID
	}
	if err := b.vehicles.AssignDriver(ctx, vehicleID, ptr); err != nil {
		b.log.Error("assign driver", "err", err, "vehicle_id", vehicleID)
		_ = b.answerCallback(cb, "Failed", true)
		return
	}
	_ = b.answerCallback(cb, "Assigned", false)
	_ = b.states.Reset(ctx, chatID)
	b.showVehiclesMenu(ctx, chatID)
}

func (b *Bot) cbVehicleToggleActive(ctx context.Context, cb *tgbotapi.CallbackQuery, vehicleID int64) {
	chatID := cb.Message.Chat.ID
	v, err := b.vehicles.GetByID(ctx, vehicleID)
	if err != nil || v == nil {
		_ = b.answerCallback(cb, "Vehicle not found", true)
		return
	}
	if err := b.vehicles.SetActive(ctx, vehicleID, !v.Active); err != nil {
		b.log.Error("toggle vehicle active", "err", err, "vehicle_id", vehicleID)
		return
	}
	_ = b.answerCallback(cb, "Status updated", false)
	b.showVehiclesMenu(ctx, chatID)
}
