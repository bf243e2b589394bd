// Package excel — выгрузка и загрузка базы записей и недельных сводок
// в формате .xlsx. Колонки совпадают с тем, что исторически отдаёт
// таблица операторов, поэтому выгруженный файл можно править и загружать
// обратно.
package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
	"github.com/bncabs/payroll-bot/internal/domain/report"
)

const (
	entriesSheet = "Database"
	weeklySheet  = "Weekly Summary"
)

var entryHeaders = []string{
	"Date", "Driver", "Vehicle", "Earnings", "Cash Collection",
	"Offline Earnings", "Offline Cash", "Trips", "Toll", "Login Hrs",
	"Salary", "CNG", "Petrol", "Other Expenses", "Opening Balance",
	"Room Rent", "Payable", "P&L",
}

// ExportEntries собирает лист "Database" со всеми записями.
func ExportEntries(list []entries.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := renameDefaultSheet(f, entriesSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, entriesSheet, 1, toAny(entryHeaders)); err != nil {
		return nil, err
	}

	for i, e := range list {
		row := []any{
			e.DateKey(), e.Driver, e.Vehicle, e.Earnings, e.CashCollection,
			e.OfflineEarnings, e.OfflineCash, e.Trips, e.Toll, e.LoginHours,
			e.Salary, e.CNG, e.Petrol, e.OtherExpenses, e.OpeningBalance,
			e.RoomRent, e.Payable, e.PL,
		}
		if err := writeRow(f, entriesSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

var weeklyHeaders = []string{
	"Week Start", "Week End", "Vehicle", "Earnings", "Cash",
	"Uber Commission", "Toll", "Trips", "Rent", "Days",
	"Insurance", "TDS", "Payable",
}

// ExportWeeklySummaries собирает лист "Weekly Summary".
func ExportWeeklySummaries(list []report.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := renameDefaultSheet(f, weeklySheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, weeklySheet, 1, toAny(weeklyHeaders)); err != nil {
		return nil, err
	}

	for i, s := range list {
		row := []any{
			s.WeekStart, s.WeekEnd, s.Vehicle, s.Earnings, s.Cash,
			s.UberCommission, s.Toll, s.Trips, s.Rent, s.Days,
			s.Insurance, s.TDS, s.Payable,
		}
		if err := writeRow(f, weeklySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportedRow — одна строка импорта: сырые поля из файла плюс производные,
// пересчитанные теми же формулами, что и при обычном сохранении записи.
type ImportedRow struct {
	Line    int // номер строки в файле, для сообщений об ошибках
	Date    time.Time
	Driver  string
	Vehicle string

	payroll.Inputs
	payroll.Derived
}

// Batch — результат разбора файла. ID метит источник записей в базе
// ("import:<id>"), чтобы загрузку можно было отличить от ручного ввода.
type Batch struct {
	ID   string
	Rows []ImportedRow

	// HasRoomRent — была ли в файле колонка Room Rent. В старых выгрузках
	// её нет, тогда плату за жильё подставляет вызывающая сторона по ростеру.
	HasRoomRent bool
}

// ImportEntries разбирает первый лист файла. Числовая коэрция мягкая:
// пустая или нечитаемая ячейка = 0 (контракт границы — внутрь движка
// NaN/мусор не проходит). Производные поля из файла игнорируются и
// пересчитываются заново через payroll.Derive.
func ImportEntries(data []byte) (*Batch, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}

	col := headerIndex(rows[0])
	if _, ok := col["date"]; !ok {
		return nil, fmt.Errorf("missing Date column")
	}

	batch := &Batch{ID: uuid.NewString()}
	_, batch.HasRoomRent = col["room rent"]
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		date, err := parseDate(cell(row, col, "date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		r := ImportedRow{
			Line:    i + 1,
			Date:    date,
			Driver:  strings.TrimSpace(cell(row, col, "driver")),
			Vehicle: strings.TrimSpace(cell(row, col, "vehicle")),
		}
		r.Inputs = payroll.Inputs{
			Earnings:        num(cell(row, col, "earnings")),
			CashCollection:  num(cell(row, col, "cash collection")),
			OfflineEarnings: num(cell(row, col, "offline earnings")),
			OfflineCash:     num(cell(row, col, "offline cash")),
			Trips:           int(num(cell(row, col, "trips"))),
			Toll:            num(cell(row, col, "toll")),
			CNG:             num(cell(row, col, "cng")),
			Petrol:          num(cell(row, col, "petrol")),
			OtherExpenses:   num(cell(row, col, "other expenses")),
			LoginHours:      num(cell(row, col, "login hrs")),
			OpeningBalance:  num(cell(row, col, "opening balance")),
			RoomRent:        num(cell(row, col, "room rent")),
		}
		r.Derived = payroll.Derive(r.Inputs)

		batch.Rows = append(batch.Rows, r)
	}
	if len(batch.Rows) == 0 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return batch, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// num — мягкая числовая коэрция: пусто/мусор = 0, запятая как разделитель.
func num(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01-02-06", // дефолтный короткий формат дат excelize
	"1/2/06",
	"2006/01/02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	// серийная дата Excel (дней с 1899-12-30)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func renameDefaultSheet(f *excelize.File, name string) error {
	def := f.GetSheetName(f.GetActiveSheetIndex())
	if def == name {
		return nil
	}
	return f.SetSheetName(def, name)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cellName, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
