package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
	"github.com/bncabs/payroll-bot/internal/domain/report"
	"github.com/bncabs/payroll-bot/internal/excel"
	"github.com/bncabs/payroll-bot/internal/infra/metrics"
)

func reportMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Build", "rep:build"),
			tgbotapi.NewInlineKeyboardButtonData("📤 Export .xlsx", "rep:export"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("From…", "rep:from"),
			tgbotapi.NewInlineKeyboardButtonData("To…", "rep:to"),
			tgbotapi.NewInlineKeyboardButtonData("Vehicle…", "rep:vehicle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Set TDS", "rep:tds"),
			tgbotapi.NewInlineKeyboardButtonData("Clear filters", "rep:clear"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
}

func (b *Bot) showReportMenu(ctx context.Context, chatID int64, p dialog.Payload) {
	if p == nil {
		p = dialog.Payload{}
	}
	_ = b.states.Set(ctx, chatID, dialog.StateReportMenu, p)

	from, _ := dialog.GetString(p, "from")
	to, _ := dialog.GetString(p, "to")
	vehicle, _ := dialog.GetString(p, "vehicle")
	if from == "" {
		from = "—"
	}
	if to == "" {
		to = "—"
	}
	if vehicle == "" {
		vehicle = "all"
	}
	text := fmt.Sprintf("Weekly summary\nPeriod: %s … %s\nVehicle: %s", from, to, vehicle)

	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = reportMenuKeyboard()
	b.send(m)
}

// reportFilter восстанавливает фильтр из payload сессии отчёта.
func reportFilter(p dialog.Payload) report.Filter {
	var f report.Filter
	if s, ok := dialog.GetString(p, "from"); ok && s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			f.From = &d
		}
	}
	if s, ok := dialog.GetString(p, "to"); ok && s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			f.To = &d
		}
	}
	f.Vehicle, _ = dialog.GetString(p, "vehicle")
	return f
}

func reportOverrides(p dialog.Payload) report.Overrides {
	out := report.Overrides{}
	for ks, v := range dialog.GetTDS(p, "tds") {
		k, err := report.ParseKey(ks)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

func (b *Bot) buildSummaries(ctx context.Context, p dialog.Payload) ([]report.Summary, error) {
	list, err := b.entries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return report.Build(list, reportFilter(p), reportOverrides(p)), nil
}

func formatSummaries(list []report.Summary) string {
	if len(list) == 0 {
		return "No entries match the filter."
	}
	var sb strings.Builder
	for _, s := range list {
		fmt.Fprintf(&sb, "📅 %s … %s  🚕 %s\n", s.WeekStart, s.WeekEnd, s.Vehicle)
		fmt.Fprintf(&sb, "  Earnings %s, cash %s, Uber commission %s\n",
			payroll.FormatINR(s.Earnings), payroll.FormatINR(s.Cash), payroll.FormatINR(s.UberCommission))
		fmt.Fprintf(&sb, "  Trips %d, days %d, toll %s\n", s.Trips, s.Days, payroll.FormatINR(s.Toll))
		fmt.Fprintf(&sb, "  Rent %s, insurance %s, TDS %s\n",
			payroll.FormatINR(s.Rent), payroll.FormatINR(s.Insurance), payroll.FormatINR(s.TDS))
		fmt.Fprintf(&sb, "  Payable: %s\n\n", payroll.FormatINR(s.Payable))
	}
	return sb.String()
}

func (b *Bot) cbReportBuild(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	list, err := b.buildSummaries(ctx, st.Payload)
	if err != nil {
		b.log.Error("build report", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the report."))
		return
	}
	metrics.ReportsBuilt.Inc()

	m := tgbotapi.NewMessage(chatID, formatSummaries(list))
	m.ReplyMarkup = reportMenuKeyboard()
	b.send(m)
}

func (b *Bot) cbReportExport(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	list, err := b.buildSummaries(ctx, st.Payload)
	if err != nil {
		b.log.Error("build report", "err", err)
		return
	}
	data, err := excel.ExportWeeklySummaries(list)
	if err != nil {
		b.log.Error("export weekly xlsx", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the file."))
		return
	}
	metrics.ExportsServed.Inc()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("weekly-summary-%s.xlsx", time.Now().Format("2006-01-02")),
		Bytes: data,
	})
	doc.Caption = "Weekly summary"
	b.send(doc)
}

// cbReportAskDate — запросы "From…"/"To…": следующее текстовое сообщение
// будет датой границы периода.
func (b *Bot) cbReportAskDate(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, bound string) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	next := dialog.StateReportFrom
	if bound == "to" {
		next = dialog.StateReportTo
	}
	_ = b.states.Set(ctx, chatID, next, st.Payload)
	b.send(tgbotapi.NewMessage(chatID, "Date (YYYY-MM-DD):"))
}

func (b *Bot) stateReportDate(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item, bound string) {
	chatID := msg.Chat.ID
	d, err := parseUserDate(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Bad date: "+err.Error()))
		return
	}
	st.Payload[bound] = d.Format("2006-01-02")
	b.showReportMenu(ctx, chatID, st.Payload)
}

func (b *Bot) cbReportAskVehicle(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	_ = b.states.Set(ctx, chatID, dialog.StateReportVehicle, st.Payload)
	b.send(tgbotapi.NewMessage(chatID, "Vehicle number (or part of it):"))
}

func (b *Bot) stateReportVehicle(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	st.Payload["vehicle"] = strings.TrimSpace(msg.Text)
	b.showReportMenu(ctx, msg.Chat.ID, st.Payload)
}

func (b *Bot) cbReportClear(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	_ = b.answerCallback(cb, "Filters cleared", false)
	delete(st.Payload, "from")
	delete(st.Payload, "to")
	delete(st.Payload, "vehicle")
	delete(st.Payload, "tds")
	b.showReportMenu(ctx, cb.Message.Chat.ID, st.Payload)
}

/*** TDS ***/

// cbReportTDSMenu — выбор корзины, для которой админ вводит TDS.
func (b *Bot) cbReportTDSMenu(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	list, err := b.buildSummaries(ctx, st.Payload)
	if err != nil {
		b.log.Error("build report", "err", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Nothing to set TDS on: the report is empty."))
		return
	}

	keys := make([]any, 0, len(list))
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i, s := range list {
		keys = append(keys, s.Key().String())
		label := fmt.Sprintf("%s %s (TDS %s)", s.WeekStart, s.Vehicle, payroll.FormatINR(s.TDS))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("tds:pick:%d", i)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	st.Payload["tds_keys"] = keys
	_ = b.states.Set(ctx, chatID, dialog.StateReportTDSPick, st.Payload)

	m := tgbotapi.NewMessage(chatID, "Pick the week/vehicle:")
	m.ReplyMarkup = tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	b.send(m)
}

func (b *Bot) cbReportTDSPick(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, idx int) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	keys, _ := st.Payload["tds_keys"].([]any)
	if idx < 0 || idx >= len(keys) {
		b.send(tgbotapi.NewMessage(chatID, "That report is stale, build it again."))
		return
	}
	key, _ := keys[idx].(string)
	st.Payload["tds_key"] = key
	_ = b.states.Set(ctx, chatID, dialog.StateReportTDSVal, st.Payload)
	b.editTextAndClear(chatID, cb.Message.MessageID, "TDS amount:")
}

func (b *Bot) stateReportTDSValue(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	v, err := parseAmount(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Enter a non-negative number."))
		return
	}
	key, _ := dialog.GetString(st.Payload, "tds_key")
	if key == "" {
		b.showReportMenu(ctx, chatID, st.Payload)
		return
	}

	tds, _ := st.Payload["tds"].(map[string]any)
	if tds == nil {
		tds = map[string]any{}
	}
	tds[key] = v
	st.Payload["tds"] = tds
	delete(st.Payload, "tds_key")
	delete(st.Payload, "tds_keys")

	list, err := b.buildSummaries(ctx, st.Payload)
	if err != nil {
		b.log.Error("build report", "err", err)
		return
	}
	metrics.ReportsBuilt.Inc()
	_ = b.states.Set(ctx, chatID, dialog.StateReportMenu, st.Payload)

	m := tgbotapi.NewMessage(chatID, "TDS applied.\n\n"+formatSummaries(list))
	m.ReplyMarkup = reportMenuKeyboard()
	b.send(m)
}
