package excel

import (
	"testing"
	"time"

	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
	"github.com/bncabs/payroll-bot/internal/domain/report"
)

func TestExportImportRoundTrip(t *testing.T) {
	in := payroll.Inputs{
		Earnings:        5200,
		CashCollection:  6100,
		OfflineEarnings: 300,
		OfflineCash:     150,
		Trips:           18,
		Toll:            120,
		CNG:             700,
		Petrol:          90,
		OtherExpenses:   45,
		LoginHours:      11.5,
		OpeningBalance:  200,
		RoomRent:        50,
	}
	e := entries.Entry{
		Date:    time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Driver:  "Ravi Kumar",
		Vehicle: "KA01AB1234",
	}
	e.Inputs = in
	e.Derived = payroll.Derive(in)

	data, err := ExportEntries([]entries.Entry{e})
	if err != nil {
		t.Fatal(err)
	}

	batch, err := ImportEntries(data)
	if err != nil {
		t.Fatal(err)
	}
	if batch.ID == "" {
		t.Error("batch id not set")
	}
	if !batch.HasRoomRent {
		t.Error("room rent column not detected")
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(batch.Rows))
	}

	got := batch.Rows[0]
	if !got.Date.Equal(e.Date) {
		t.Errorf("date = %v, want %v", got.Date, e.Date)
	}
	if got.Driver != e.Driver || got.Vehicle != e.Vehicle {
		t.Errorf("driver/vehicle = %q/%q", got.Driver, got.Vehicle)
	}
	if got.Inputs != in {
		t.Errorf("inputs = %+v, want %+v", got.Inputs, in)
	}
	if got.Derived != e.Derived {
		t.Errorf("derived = %+v, want %+v", got.Derived, e.Derived)
	}
}

func TestImportCoercesEmptyCellsToZero(t *testing.T) {
	e := entries.Entry{
		Date:    time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Driver:  "Suresh",
		Vehicle: "V2",
	}
	// все числовые поля нулевые — экспорт запишет 0, импорт обязан их прочесть
	e.Derived = payroll.Derive(e.Inputs)

	data, err := ExportEntries([]entries.Entry{e})
	if err != nil {
		t.Fatal(err)
	}
	batch, err := ImportEntries(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := batch.Rows[0].Inputs; got != (payroll.Inputs{}) {
		t.Errorf("inputs = %+v, want zero", got)
	}
	if got := batch.Rows[0].PayPercent; got != 0 {
		t.Errorf("pay percent = %d, want 0", got)
	}
}

func TestImportRejectsEmptyFile(t *testing.T) {
	data, err := ExportEntries(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ImportEntries(data); err == nil {
		t.Error("expected error for file without data rows")
	}
}

func TestImportDerivesFromRawFields(t *testing.T) {
	// производные в файле могли устареть — движок пересчитывает сам
	in := payroll.Inputs{Earnings: 6100, CashCollection: 7000, LoginHours: 12, Trips: 20}
	e := entries.Entry{
		Date:    time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Driver:  "A",
		Vehicle: "V1",
	}
	e.Inputs = in
	e.Derived = payroll.Derived{Salary: -1, Payable: -1, PL: -1} // мусор в файле

	data, err := ExportEntries([]entries.Entry{e})
	if err != nil {
		t.Fatal(err)
	}
	batch, err := ImportEntries(data)
	if err != nil {
		t.Fatal(err)
	}
	want := payroll.Derive(in)
	if batch.Rows[0].Derived != want {
		t.Errorf("derived = %+v, want %+v", batch.Rows[0].Derived, want)
	}
}

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	cases := []string{"2025-06-02", "02.06.2025", "06-02-25", "45810"}
	for _, c := range cases {
		got, err := parseDate(c)
		if err != nil {
			t.Errorf("parseDate(%q): %v", c, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", c, got, want)
		}
	}
	if _, err := parseDate("not-a-date"); err == nil {
		t.Error("expected error for garbage date")
	}
	if _, err := parseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestExportWeeklySummaries(t *testing.T) {
	s := report.Summary{
		WeekStart: "2025-06-02", WeekEnd: "2025-06-08", Vehicle: "V1",
		Earnings: 2000, Cash: 2400, UberCommission: 400, Toll: 100,
		Trips: 140, Rent: 750, Days: 2, Insurance: 60, TDS: 0, Payable: 2110,
	}
	data, err := ExportWeeklySummaries([]report.Summary{s})
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("empty file")
	}
}
