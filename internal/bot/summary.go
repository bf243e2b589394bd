package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
	"github.com/bncabs/payroll-bot/internal/domain/report"
	"github.com/bncabs/payroll-bot/internal/infra/metrics"
)

// Произвольная сводка: итоги выручки и поездок по водителям либо машинам
// за период. Фильтр живёт в payload сессии, как у недельного отчёта.

func summaryMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 By driver", "sum:drivers"),
			tgbotapi.NewInlineKeyboardButtonData("🚕 By vehicle", "sum:vehicles"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("From…", "sum:from"),
			tgbotapi.NewInlineKeyboardButtonData("To…", "sum:to"),
			tgbotapi.NewInlineKeyboardButtonData("Clear", "sum:clear"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
}

func (b *Bot) showSummaryMenu(ctx context.Context, chatID int64, p dialog.Payload) {
	if p == nil {
		p = dialog.Payload{}
	}
	_ = b.states.Set(ctx, chatID, dialog.StateSumMenu, p)

	from, _ := dialog.GetString(p, "from")
	to, _ := dialog.GetString(p, "to")
	if from == "" {
		from = "—"
	}
	if to == "" {
		to = "—"
	}
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("Summary\nPeriod: %s … %s", from, to))
	m.ReplyMarkup = summaryMenuKeyboard()
	b.send(m)
}

func formatTotals(title string, list []report.Totals) string {
	if len(list) == 0 {
		return "No entries match the period."
	}
	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, t := range list {
		fmt.Fprintf(&sb, "%s — %s, %d trips\n", t.Name, payroll.FormatINR(t.Earnings), t.Trips)
	}
	return sb.String()
}

func (b *Bot) cbSummaryBuild(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, byVehicle bool) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)

	list, err := b.entries.List(ctx)
	if err != nil {
		b.log.Error("list entries", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the summary."))
		return
	}
	f := reportFilter(st.Payload)

	var text string
	if byVehicle {
		text = formatTotals("Totals by vehicle:", report.VehicleTotals(list, f))
	} else {
		text = formatTotals("Totals by driver:", report.DriverTotals(list, f))
	}
	metrics.ReportsBuilt.Inc()

	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = summaryMenuKeyboard()
	b.send(m)
}

func (b *Bot) cbSummaryAskDate(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item, bound string) {
	chatID := cb.Message.Chat.ID
	_ = b.answerCallback(cb, "", false)
	next := dialog.StateSumFrom
	if bound == "to" {
		next = dialog.StateSumTo
	}
	_ = b.states.Set(ctx, chatID, next, st.Payload)
	b.send(tgbotapi.NewMessage(chatID, "Date (YYYY-MM-DD):"))
}

func (b *Bot) stateSummaryDate(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item, bound string) {
	chatID := msg.Chat.ID
	d, err := parseUserDate(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Bad date: "+err.Error()))
		return
	}
	st.Payload[bound] = d.Format("2006-01-02")
	b.showSummaryMenu(ctx, chatID, st.Payload)
}

func (b *Bot) cbSummaryClear(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	_ = b.answerCallback(cb, "Period cleared", false)
	delete(st.Payload, "from")
	delete(st.Payload, "to")
	b.showSummaryMenu(ctx, cb.Message.Chat.ID, st.Payload)
}
