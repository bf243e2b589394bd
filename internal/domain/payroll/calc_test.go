package payroll

import (
	"math"
	"testing"
)

func TestPayPercentTiers(t *testing.T) {
	// границы ступеней при полных логин-часах (>= 11, без штрафа)
	tests := []struct {
		earnings float64
		want     int
	}{
		{1799, 0},
		{1800, 25},
		{2499, 25},
		{2500, 30},
		{3999, 30},
		{4000, 32},
		{4999, 32},
		{5000, 34},
		{5999, 34},
		{6000, 38},
		{6999, 38},
		{7000, 38},
		{15000, 38},
	}
	for _, tt := range tests {
		if got := PayPercent(tt.earnings, 0, 11); got != tt.want {
			t.Errorf("PayPercent(%v, 0, 11) = %d, want %d", tt.earnings, got, tt.want)
		}
	}
}

func TestPayPercentOfflineCountsTowardsTotal(t *testing.T) {
	// 1000 онлайн + 900 офлайн = 1900 -> ступень 25
	if got := PayPercent(1000, 900, 12); got != 25 {
		t.Errorf("PayPercent(1000, 900, 12) = %d, want 25", got)
	}
}

func TestPayPercentLoginHoursPenalty(t *testing.T) {
	tests := []struct {
		earnings float64
		hours    float64
		want     int
	}{
		{5000, 8, 22},  // база 32, -10
		{5000, 10, 27}, // база 32, -5
		{5000, 11, 32}, // без штрафа
		{5000, 9, 27},  // ровно 9 часов — штраф -5, не -10
		{1000, 5, 0},   // штраф не уводит ниже нуля
		{1800, 5, 15},
	}
	for _, tt := range tests {
		if got := PayPercent(tt.earnings, 0, tt.hours); got != tt.want {
			t.Errorf("PayPercent(%v, 0, %v) = %d, want %d", tt.earnings, tt.hours, got, tt.want)
		}
	}
}

func TestSalary(t *testing.T) {
	if got := Salary(4000, 1000, 34); got != 1700 {
		t.Errorf("Salary(4000, 1000, 34) = %v, want 1700", got)
	}
	// округление до копеек
	if got := Salary(3333, 0, 30); got != 999.90 {
		t.Errorf("Salary(3333, 0, 30) = %v, want 999.90", got)
	}
}

func TestPayableIgnoresOfflineTerms(t *testing.T) {
	base := Payable(1000, 0, 2000, 0, 500, 100, 50, 25, 300, 50)
	want := 2000.0 - 500 - 100 - 50 - 25 + 300 - 50
	if base != want {
		t.Fatalf("Payable = %v, want %v", base, want)
	}
	// офлайн-поля на результат не влияют
	if got := Payable(9999, 777, 2000, 888, 500, 100, 50, 25, 300, 50); got != base {
		t.Errorf("Payable with offline terms = %v, want %v", got, base)
	}
}

func TestCommissionUsesOnlineEarningsOnly(t *testing.T) {
	if got := Commission(1200, 1000); got != 200 {
		t.Errorf("Commission(1200, 1000) = %v, want 200", got)
	}
	if got := Commission(900, 1000); got != -100 {
		t.Errorf("Commission(900, 1000) = %v, want -100", got)
	}
}

func TestProfitLoss(t *testing.T) {
	// 3000 - 900 - 100 - 50 - 150 - 20 - 1080 = 700
	if got := ProfitLoss(2500, 500, 900, 100, 50, 150, 20); got != 700 {
		t.Errorf("ProfitLoss = %v, want 700", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2110, 2110},
		{10.004, 10.00},
		{10.005, 10.01}, // half-up на границе копейки
		{10.015, 10.02},
		{-10.005, -10.01},
		{0.125, 0.13},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDeriveConsistent(t *testing.T) {
	in := Inputs{
		Earnings:        5000,
		CashCollection:  5500,
		OfflineEarnings: 500,
		OfflineCash:     200,
		Trips:           20,
		Toll:            120,
		CNG:             400,
		Petrol:          100,
		OtherExpenses:   80,
		LoginHours:      12,
		OpeningBalance:  150,
		RoomRent:        50,
	}
	d := Derive(in)

	wantPct := PayPercent(in.Earnings, in.OfflineEarnings, in.LoginHours)
	if d.PayPercent != wantPct {
		t.Errorf("PayPercent = %d, want %d", d.PayPercent, wantPct)
	}
	if d.Salary != Salary(in.Earnings, in.OfflineEarnings, wantPct) {
		t.Errorf("Salary = %v", d.Salary)
	}
	if d.Payable != Payable(in.Earnings, in.OfflineEarnings, in.CashCollection, in.OfflineCash,
		d.Salary, in.CNG, in.Petrol, in.OtherExpenses, in.OpeningBalance, in.RoomRent) {
		t.Errorf("Payable = %v", d.Payable)
	}
	if d.Commission != Commission(in.CashCollection, in.Earnings) {
		t.Errorf("Commission = %v", d.Commission)
	}
	if d.PL != ProfitLoss(in.Earnings, in.OfflineEarnings, d.Salary, in.CNG, in.Toll, in.Petrol, in.OtherExpenses) {
		t.Errorf("PL = %v", d.PL)
	}

	// повторный Derive на тех же сырых полях даёт те же производные
	if d2 := Derive(in); d2 != d {
		t.Errorf("Derive not deterministic: %+v vs %+v", d2, d)
	}
}

func TestFormatINR(t *testing.T) {
	if got := FormatINR(2110); got != "₹2110.00" {
		t.Errorf("FormatINR(2110) = %q", got)
	}
}
