package bot

import (
	"testing"
	"time"

	"github.com/bncabs/payroll-bot/internal/dialog"
	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/users"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1200", 1200, false},
		{" 55.5 ", 55.5, false},
		{"55,5", 55.5, false},
		{"0", 0, false},
		{"-10", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := parseAmount(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("parseAmount(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("parseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseUserDate(t *testing.T) {
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-06-02", "02.06.2025"} {
		got, err := parseUserDate(in)
		if err != nil {
			t.Fatalf("parseUserDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("parseUserDate(%q) = %v, want %v", in, got, want)
		}
	}

	today, err := parseUserDate("Today")
	if err != nil {
		t.Fatal(err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("today not truncated to midnight: %v", today)
	}

	if _, err := parseUserDate("02/06/2025x"); err == nil {
		t.Error("expected error for garbage date")
	}
}

func TestBuildInputs(t *testing.T) {
	p := dialog.Payload{
		"earnings":        5200.0,
		"cash_collection": 6100.0,
		"trips":           18.0, // payload идёт через JSON, числа — float64
		"login_hours":     11.5,
	}
	in := buildInputs(p, 50)
	if in.Earnings != 5200 || in.CashCollection != 6100 {
		t.Errorf("earnings/cash = %v/%v", in.Earnings, in.CashCollection)
	}
	if in.Trips != 18 {
		t.Errorf("trips = %d, want 18", in.Trips)
	}
	if in.LoginHours != 11.5 {
		t.Errorf("login hours = %v", in.LoginHours)
	}
	if in.RoomRent != 50 {
		t.Errorf("room rent = %v, want 50", in.RoomRent)
	}
	if in.Toll != 0 || in.CNG != 0 {
		t.Errorf("missing keys must default to 0, got toll=%v cng=%v", in.Toll, in.CNG)
	}
}

func TestCanTouchEntry(t *testing.T) {
	driverID := int64(7)
	otherID := int64(8)
	entry := &entries.Entry{ID: 1, DriverID: driverID}

	cases := []struct {
		name string
		user *users.User
		want bool
	}{
		{"own entry", &users.User{Role: users.RoleDriver, DriverID: &driverID}, true},
		{"someone else's entry", &users.User{Role: users.RoleDriver, DriverID: &otherID}, false},
		{"driver without profile", &users.User{Role: users.RoleDriver}, false},
		{"admin touches anything", &users.User{Role: users.RoleAdmin}, true},
		{"nil user", nil, false},
	}
	for _, c := range cases {
		if got := canTouchEntry(c.user, entry); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
	if canTouchEntry(&users.User{Role: users.RoleAdmin}, nil) {
		t.Error("nil entry accepted")
	}
}

func TestDashEmpty(t *testing.T) {
	if got := dashEmpty("-"); got != "" {
		t.Errorf("dash = %q, want empty", got)
	}
	if got := dashEmpty("  KA123  "); got != "KA123" {
		t.Errorf("got %q", got)
	}
}

func TestSetEntryField(t *testing.T) {
	var e entries.Entry
	if !setEntryField(&e, "petrol", 90) || e.Petrol != 90 {
		t.Errorf("petrol = %v", e.Petrol)
	}
	if !setEntryField(&e, "trips", 18) || e.Trips != 18 {
		t.Errorf("trips = %d", e.Trips)
	}
	if setEntryField(&e, "salary", 1) {
		t.Error("derived field must not be settable")
	}
	if setEntryField(&e, "nope", 1) {
		t.Error("unknown field accepted")
	}
}
