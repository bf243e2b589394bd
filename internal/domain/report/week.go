package report

import "time"

// Чистые функции границ недели: понедельник—воскресенье, без привязки
// к «сегодня». time.Weekday нумерует воскресенье нулём, поэтому для
// воскресенья откатываемся на 6 дней к предыдущему понедельнику.

// WeekStart — понедельник недели, в которую попадает дата (полночь).
func WeekStart(d time.Time) time.Time {
	day := truncateToDay(d)
	back := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		back = 6
	}
	return day.AddDate(0, 0, -back)
}

// WeekEnd — воскресенье той же недели (полночь; день включается целиком).
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 6)
}

func truncateToDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
