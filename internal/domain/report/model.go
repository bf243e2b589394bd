package report

import (
	"fmt"
	"strings"
	"time"
)

// Summary — недельная сводка по одной машине. Живёт только в сессии отчёта:
// пересобирается на каждый запрос, в базу не пишется.
type Summary struct {
	WeekStart string // ISO-даты, сортируемые строкой
	WeekEnd   string
	Vehicle   string

	Earnings       float64
	Cash           float64
	UberCommission float64
	Toll           float64
	Trips          int
	Rent           float64
	Days           int
	Insurance      float64
	TDS            float64
	Payable        float64
}

// Key — составной ключ корзины (неделя + машина).
type Key struct {
	WeekStart string
	WeekEnd   string
	Vehicle   string
}

func (s Summary) Key() Key {
	return Key{WeekStart: s.WeekStart, WeekEnd: s.WeekEnd, Vehicle: s.Vehicle}
}

func (k Key) String() string {
	return k.WeekStart + "_" + k.WeekEnd + "_" + k.Vehicle
}

// ParseKey разбирает ключ из строкового вида (payload диалога хранит JSON).
func ParseKey(s string) (Key, error) {
	parts := strings.SplitN(s, "_", 3)
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("bad summary key %q", s)
	}
	return Key{WeekStart: parts[0], WeekEnd: parts[1], Vehicle: parts[2]}, nil
}

// Overrides — введённые администратором значения TDS по корзинам.
// Владелец — сессия отчёта; движок получает её параметром и не хранит.
type Overrides map[Key]float64

// Filter — критерии отбора записей перед разбиением на недели.
// Даты включительные; Vehicle — подстрока номера без учёта регистра.
type Filter struct {
	From    *time.Time
	To      *time.Time
	Vehicle string
}
