package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/drivers"
	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/excel"
	"github.com/bncabs/payroll-bot/internal/infra/metrics"
)

// handleDatabaseExport — вся база записей одним .xlsx в чат.
func (b *Bot) handleDatabaseExport(ctx context.Context, chatID int64) {
	list, err := b.entries.List(ctx)
	if err != nil {
		b.log.Error("list entries", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not read the database."))
		return
	}
	data, err := excel.ExportEntries(list)
	if err != nil {
		b.log.Error("export entries xlsx", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the file."))
		return
	}
	metrics.ExportsServed.Inc()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("bn-cabs-database-%s.xlsx", time.Now().Format("2006-01-02")),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("Database export, %d entries", len(list))
	b.send(doc)
}

func (b *Bot) startDatabaseImport(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateDBImportFile, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Send the .xlsx file with entries (same columns as the export).")
	m.ReplyMarkup = navKeyboard(false, true)
	b.send(m)
}

// handleDatabaseImportFile — загрузка базы из файла. Водителей и машины,
// которых нет в ростере, заводим на лету, чтобы не терять строки.
func (b *Bot) handleDatabaseImportFile(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	if !strings.HasSuffix(strings.ToLower(msg.Document.FileName), ".xlsx") {
		b.send(tgbotapi.NewMessage(chatID, "Expected an .xlsx file."))
		return
	}
	data, err := b.downloadTelegramFile(msg.Document.FileID)
	if err != nil {
		b.log.Error("download import file", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not download the file from Telegram."))
		return
	}

	batch, err := excel.ImportEntries(data)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Import failed: "+err.Error()))
		return
	}

	roster, err := b.drivers.List(ctx, false)
	if err != nil {
		b.log.Error("list drivers", "err", err)
		return
	}

	var created, newDrivers, newVehicles int
	for _, row := range batch.Rows {
		if row.Driver == "" || row.Vehicle == "" {
			b.send(tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Row %d: driver and vehicle are required. Nothing after it was imported.", row.Line)))
			break
		}

		d, err := b.drivers.GetByName(ctx, row.Driver)
		if err != nil {
			b.log.Error("lookup driver", "err", err, "name", row.Driver)
			return
		}
		if d == nil {
			id, err := b.drivers.Create(ctx, drivers.Driver{Name: row.Driver})
			if err != nil {
				b.log.Error("create driver", "err", err, "name", row.Driver)
				return
			}
			d = &drivers.Driver{ID: id, Name: row.Driver, Active: true}
			roster = append(roster, *d)
			newDrivers++
		}

		v, err := b.vehicles.GetByNumber(ctx, row.Vehicle)
		if err != nil {
			b.log.Error("lookup vehicle", "err", err, "number", row.Vehicle)
			return
		}
		var vehicleID int64
		if v == nil {
			vehicleID, err = b.vehicles.Create(ctx, row.Vehicle, "cab")
			if err != nil {
				b.log.Error("create vehicle", "err", err, "number", row.Vehicle)
				return
			}
			newVehicles++
		} else {
			vehicleID = v.ID
		}

		e := entries.Entry{
			Date:      row.Date,
			DriverID:  d.ID,
			VehicleID: vehicleID,
			Source:    "import:" + batch.ID,
		}
		e.Inputs = row.Inputs
		// в старых файлах колонки Room Rent может не быть — берём из ростера
		if !batch.HasRoomRent {
			e.RoomRent = drivers.RoomRentFor(row.Driver, roster)
		}

		if _, err := b.entries.Create(ctx, &e); err != nil {
			b.log.Error("insert imported entry", "err", err, "line", row.Line)
			b.send(tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Row %d could not be saved, import stopped.", row.Line)))
			break
		}
		created++
	}
	metrics.ImportedRows.Add(float64(created))
	b.log.Info("database import", "batch", batch.ID, "rows", created,
		"new_drivers", newDrivers, "new_vehicles", newVehicles)

	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Import done ✅\nRows saved: %d of %d\nNew drivers: %d\nNew vehicles: %d\nBatch: %s",
		created, len(batch.Rows), newDrivers, newVehicles, batch.ID)))
}
