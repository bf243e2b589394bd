package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
)

func totalsEntry(date string, driver, vehicle string, earnings, offline float64, trips int) entries.Entry {
	d, _ := time.Parse("2006-01-02", date)
	e := entries.Entry{Date: d, Driver: driver, Vehicle: vehicle}
	e.Inputs = payroll.Inputs{Earnings: earnings, OfflineEarnings: offline, Trips: trips}
	return e
}

func TestDriverTotalsGroupsAndSorts(t *testing.T) {
	list := []entries.Entry{
		totalsEntry("2025-06-02", "Ravi", "V1", 1000, 200, 10),
		totalsEntry("2025-06-03", "Suresh", "V1", 3000, 0, 20),
		totalsEntry("2025-06-04", "Ravi", "V2", 500, 0, 5),
	}
	got := DriverTotals(list, Filter{})
	want := []Totals{
		{Name: "Suresh", Earnings: 3000, Trips: 20},
		{Name: "Ravi", Earnings: 1700, Trips: 15},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestVehicleTotalsGroupsByVehicle(t *testing.T) {
	list := []entries.Entry{
		totalsEntry("2025-06-02", "Ravi", "V1", 1000, 0, 10),
		totalsEntry("2025-06-03", "Suresh", "V1", 2000, 0, 20),
		totalsEntry("2025-06-04", "Ravi", "V2", 5000, 0, 5),
	}
	got := VehicleTotals(list, Filter{})
	want := []Totals{
		{Name: "V2", Earnings: 5000, Trips: 5},
		{Name: "V1", Earnings: 3000, Trips: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTotalsEqualEarningsKeepFirstSeenOrder(t *testing.T) {
	list := []entries.Entry{
		totalsEntry("2025-06-02", "B-first", "V1", 1000, 0, 1),
		totalsEntry("2025-06-03", "A-second", "V2", 1000, 0, 2),
	}
	got := DriverTotals(list, Filter{})
	if got[0].Name != "B-first" || got[1].Name != "A-second" {
		t.Errorf("tie-break broke first-seen order: %+v", got)
	}
}

func TestTotalsDateFilterInclusive(t *testing.T) {
	list := []entries.Entry{
		totalsEntry("2025-06-01", "Ravi", "V1", 100, 0, 1),
		totalsEntry("2025-06-02", "Ravi", "V1", 200, 0, 2),
		totalsEntry("2025-06-03", "Ravi", "V1", 400, 0, 4),
	}
	from, _ := time.Parse("2006-01-02", "2025-06-02")
	to, _ := time.Parse("2006-01-02", "2025-06-02")
	got := DriverTotals(list, Filter{From: &from, To: &to})
	if len(got) != 1 || got[0].Earnings != 200 || got[0].Trips != 2 {
		t.Errorf("got %+v, want single Ravi 200/2", got)
	}
}

func TestTotalsEmptyInput(t *testing.T) {
	if got := DriverTotals(nil, Filter{}); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
	if got := VehicleTotals([]entries.Entry{}, Filter{}); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestTotalsDoNotMutateInput(t *testing.T) {
	list := []entries.Entry{
		totalsEntry("2025-06-02", "Ravi", "V1", 1000, 200, 10),
	}
	snapshot := make([]entries.Entry, len(list))
	copy(snapshot, list)

	_ = DriverTotals(list, Filter{})
	_ = VehicleTotals(list, Filter{})

	if !reflect.DeepEqual(list, snapshot) {
		t.Error("input slice was mutated")
	}
}
