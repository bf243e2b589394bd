package report

import (
	"sort"
	"strings"

	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
)

// Недельный движок агрегации: отбор записей по фильтру, разбиение на корзины
// (неделя, машина), суммирование и расчёт недельного payable. Входные
// коллекции не мутируются; пустой вход — пустой результат, не ошибка.

// insurancePerDay — фиксированная страховка за каждый отработанный день.
const insurancePerDay = 30.0

// rentTier — ступень недельной аренды по суммарным поездкам.
// Пороги по убыванию, сравнение >=, первая подошедшая ступень.
type rentTier struct {
	MinTrips int
	Rent     float64
}

var rentTiers = []rentTier{
	{120, 750},
	{90, 850},
	{60, 950},
	{0, 1050},
}

// WeeklyRent — недельная ставка аренды за день по суммарным поездкам недели.
func WeeklyRent(trips int) float64 {
	for _, t := range rentTiers {
		if trips >= t.MinTrips {
			return t.Rent
		}
	}
	return rentTiers[len(rentTiers)-1].Rent
}

// Build собирает недельные сводки из плоского списка записей.
// Порядок детерминирован: устойчивая сортировка по началу недели (новые
// сверху), при равенстве — порядок первого появления корзины во входе.
func Build(list []entries.Entry, f Filter, tds Overrides) []Summary {
	type bucket struct {
		key      Key
		earnings float64
		cash     float64
		toll     float64
		trips    int
		days     int
	}

	buckets := map[Key]*bucket{}
	order := []Key{} // порядок первого появления — стабильный tie-break

	for _, e := range list {
		if !matches(e, f) {
			continue
		}
		k := Key{
			WeekStart: WeekStart(e.Date).Format("2006-01-02"),
			WeekEnd:   WeekEnd(e.Date).Format("2006-01-02"),
			Vehicle:   e.Vehicle,
		}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{key: k}
			buckets[k] = b
			order = append(order, k)
		}
		b.earnings += e.Earnings + e.OfflineEarnings
		b.cash += e.CashCollection
		b.toll += e.Toll
		b.trips += e.Trips
		b.days++
	}

	out := make([]Summary, 0, len(order))
	for _, k := range order {
		b := buckets[k]

		uber := b.cash - b.earnings
		rent := WeeklyRent(b.trips)
		insurance := insurancePerDay * float64(b.days)
		tdsVal := tds[k] // нет переопределения — 0

		out = append(out, Summary{
			WeekStart:      k.WeekStart,
			WeekEnd:        k.WeekEnd,
			Vehicle:        k.Vehicle,
			Earnings:       payroll.Round2(b.earnings),
			Cash:           payroll.Round2(b.cash),
			UberCommission: payroll.Round2(uber),
			Toll:           payroll.Round2(b.toll),
			Trips:          b.trips,
			Rent:           payroll.Round2(rent),
			Days:           b.days,
			Insurance:      payroll.Round2(insurance),
			TDS:            payroll.Round2(tdsVal),
			Payable:        payroll.Round2(rent*float64(b.days) + insurance + tdsVal + uber - b.toll),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeekStart > out[j].WeekStart
	})
	return out
}

// ApplyTDS пересчитывает одну корзину под новое значение TDS, не трогая
// остальные и не перечитывая записи: берутся уже агрегированные поля сводки.
// Возвращает новый срез, вход не мутируется.
func ApplyTDS(list []Summary, key Key, tds float64) []Summary {
	out := make([]Summary, len(list))
	copy(out, list)
	for i := range out {
		if out[i].Key() != key {
			continue
		}
		out[i].TDS = payroll.Round2(tds)
		out[i].Payable = payroll.Round2(
			out[i].Rent*float64(out[i].Days) + out[i].Insurance + out[i].TDS +
				out[i].UberCommission - out[i].Toll)
	}
	return out
}

func matches(e entries.Entry, f Filter) bool {
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if f.Vehicle != "" && !strings.Contains(strings.ToLower(e.Vehicle), strings.ToLower(f.Vehicle)) {
		return false
	}
	return true
}
