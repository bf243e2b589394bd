package report

import (
	"testing"
	"time"
)

func TestWeekBounds(t *testing.T) {
	// опорная неделя: понедельник 2025-06-02 … воскресенье 2025-06-08
	wantStart := "2025-06-02"
	wantEnd := "2025-06-08"

	for day := 2; day <= 8; day++ {
		d := time.Date(2025, 6, day, 15, 30, 0, 0, time.UTC)
		if got := WeekStart(d).Format("2006-01-02"); got != wantStart {
			t.Errorf("WeekStart(%s %s) = %s, want %s", d.Format("2006-01-02"), d.Weekday(), got, wantStart)
		}
		if got := WeekEnd(d).Format("2006-01-02"); got != wantEnd {
			t.Errorf("WeekEnd(%s %s) = %s, want %s", d.Format("2006-01-02"), d.Weekday(), got, wantEnd)
		}
	}
}

func TestWeekStartSunday(t *testing.T) {
	// воскресенье закрывает неделю, а не открывает следующую:
	// старт — понедельник шестью днями раньше, конец — само воскресенье
	sun := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(sun); !got.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("WeekStart(sunday) = %s", got)
	}
	if got := WeekEnd(sun); !got.Equal(sun) {
		t.Errorf("WeekEnd(sunday) = %s, want the same sunday", got)
	}
}

func TestWeekStartCrossesMonthAndYear(t *testing.T) {
	// 2026-01-01 — четверг; понедельник той недели — 2025-12-29
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(d).Format("2006-01-02"); got != "2025-12-29" {
		t.Errorf("WeekStart(2026-01-01) = %s, want 2025-12-29", got)
	}
	if got := WeekEnd(d).Format("2006-01-02"); got != "2026-01-04" {
		t.Errorf("WeekEnd(2026-01-01) = %s, want 2026-01-04", got)
	}
}
