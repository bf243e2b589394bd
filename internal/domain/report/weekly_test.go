package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
)

func TestWeeklyRentTiers(t *testing.T) {
	tests := []struct {
		trips int
		want  float64
	}{
		{0, 1050},
		{59, 1050},
		{60, 950},
		{89, 950},
		{90, 850},
		{119, 850},
		{120, 750},
		{500, 750},
	}
	for _, tt := range tests {
		if got := WeeklyRent(tt.trips); got != tt.want {
			t.Errorf("WeeklyRent(%d) = %v, want %v", tt.trips, got, tt.want)
		}
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(date time.Time, vehicle string, in payroll.Inputs) entries.Entry {
	e := entries.Entry{Date: date, Vehicle: vehicle}
	e.Inputs = in
	e.Derived = payroll.Derive(in)
	return e
}

// сквозной пример: две записи V1 во вторник и четверг одной недели
func weekFixture() []entries.Entry {
	in := payroll.Inputs{
		Earnings:       1000,
		CashCollection: 1200,
		Toll:           50,
		Trips:          70,
		LoginHours:     12,
	}
	return []entries.Entry{
		entry(day(2025, 6, 3), "V1", in), // вторник
		entry(day(2025, 6, 5), "V1", in), // четверг
	}
}

func TestBuildEndToEnd(t *testing.T) {
	got := Build(weekFixture(), Filter{}, nil)
	if len(got) != 1 {
		t.Fatalf("Build: %d summaries, want 1", len(got))
	}

	want := Summary{
		WeekStart:      "2025-06-02",
		WeekEnd:        "2025-06-08",
		Vehicle:        "V1",
		Earnings:       2000,
		Cash:           2400,
		UberCommission: 400,
		Toll:           100,
		Trips:          140,
		Rent:           750, // >= 120 поездок
		Days:           2,
		Insurance:      60,
		TDS:            0,
		// 750*2 + 60 + 0 + 400 - 100
		Payable: 2110,
	}
	if got[0] != want {
		t.Errorf("Build = %+v\nwant %+v", got[0], want)
	}
}

func TestBuildIdempotent(t *testing.T) {
	list := weekFixture()
	first := Build(list, Filter{}, nil)
	second := Build(list, Filter{}, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	list := weekFixture()
	before := make([]entries.Entry, len(list))
	copy(before, list)
	_ = Build(list, Filter{}, nil)
	if !reflect.DeepEqual(list, before) {
		t.Error("Build mutated its input")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if got := Build(nil, Filter{}, nil); len(got) != 0 {
		t.Errorf("Build(nil) = %+v, want empty", got)
	}
}

func TestBuildSeparateBucketsPerVehicleAndWeek(t *testing.T) {
	in := payroll.Inputs{Earnings: 1000, CashCollection: 1100, Trips: 10, LoginHours: 12}
	list := []entries.Entry{
		entry(day(2025, 6, 3), "V1", in),
		entry(day(2025, 6, 4), "V2", in),  // та же неделя, другая машина
		entry(day(2025, 6, 10), "V1", in), // та же машина, следующая неделя
	}
	got := Build(list, Filter{}, nil)
	if len(got) != 3 {
		t.Fatalf("Build: %d summaries, want 3", len(got))
	}
	// сортировка: новые недели сверху, внутри недели — порядок появления
	if got[0].WeekStart != "2025-06-09" || got[0].Vehicle != "V1" {
		t.Errorf("got[0] = %s %s", got[0].WeekStart, got[0].Vehicle)
	}
	if got[1].Vehicle != "V1" || got[2].Vehicle != "V2" {
		t.Errorf("same-week order not stable: %s, %s", got[1].Vehicle, got[2].Vehicle)
	}
}

func TestBuildFilters(t *testing.T) {
	in := payroll.Inputs{Earnings: 1000, CashCollection: 1100, Trips: 10, LoginHours: 12}
	list := []entries.Entry{
		entry(day(2025, 6, 3), "KA01AB1234", in),
		entry(day(2025, 6, 10), "KA01AB1234", in),
		entry(day(2025, 6, 3), "MH12XY7777", in),
	}

	from := day(2025, 6, 9)
	got := Build(list, Filter{From: &from}, nil)
	if len(got) != 1 || got[0].WeekStart != "2025-06-09" {
		t.Errorf("From filter: %+v", got)
	}

	to := day(2025, 6, 3) // включительно
	got = Build(list, Filter{To: &to}, nil)
	if len(got) != 2 {
		t.Errorf("To filter: %d summaries, want 2", len(got))
	}

	got = Build(list, Filter{Vehicle: "mh12"}, nil)
	if len(got) != 1 || got[0].Vehicle != "MH12XY7777" {
		t.Errorf("Vehicle filter: %+v", got)
	}
}

func TestBuildTDSOverride(t *testing.T) {
	list := weekFixture()
	k := Key{WeekStart: "2025-06-02", WeekEnd: "2025-06-08", Vehicle: "V1"}
	got := Build(list, Filter{}, Overrides{k: 500})
	if got[0].TDS != 500 {
		t.Errorf("TDS = %v, want 500", got[0].TDS)
	}
	if got[0].Payable != 2610 {
		t.Errorf("Payable = %v, want 2610", got[0].Payable)
	}
}

func TestApplyTDSIsolation(t *testing.T) {
	in := payroll.Inputs{Earnings: 1000, CashCollection: 1200, Toll: 50, Trips: 70, LoginHours: 12}
	list := []entries.Entry{
		entry(day(2025, 6, 3), "V1", in),
		entry(day(2025, 6, 5), "V1", in),
		entry(day(2025, 6, 3), "V2", in),
	}
	sums := Build(list, Filter{}, nil)
	if len(sums) != 2 {
		t.Fatalf("Build: %d summaries, want 2", len(sums))
	}

	keyA := Key{WeekStart: "2025-06-02", WeekEnd: "2025-06-08", Vehicle: "V1"}
	updated := ApplyTDS(sums, keyA, 250)

	var a, b *Summary
	for i := range updated {
		switch updated[i].Vehicle {
		case "V1":
			a = &updated[i]
		case "V2":
			b = &updated[i]
		}
	}
	if a.TDS != 250 {
		t.Errorf("bucket A TDS = %v, want 250", a.TDS)
	}
	if a.Payable != 2360 { // 2110 + 250
		t.Errorf("bucket A payable = %v, want 2360", a.Payable)
	}

	// корзина B не изменилась
	var orig *Summary
	for i := range sums {
		if sums[i].Vehicle == "V2" {
			orig = &sums[i]
		}
	}
	if *b != *orig {
		t.Errorf("bucket B changed: %+v vs %+v", *b, *orig)
	}

	// исходный срез не тронут
	for i := range sums {
		if sums[i].Vehicle == "V1" && sums[i].TDS != 0 {
			t.Error("ApplyTDS mutated its input")
		}
	}
}

func TestKeyRoundTrip(t *testing.T) {
	k := Key{WeekStart: "2025-06-02", WeekEnd: "2025-06-08", Vehicle: "KA01_AB"}
	parsed, err := ParseKey(k.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != k {
		t.Errorf("ParseKey(%q) = %+v", k.String(), parsed)
	}
	if _, err := ParseKey("garbage"); err == nil {
		t.Error("ParseKey accepted malformed key")
	}
}
