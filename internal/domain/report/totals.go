package report

import (
	"sort"

	"github.com/bncabs/payroll-bot/internal/domain/entries"
	"github.com/bncabs/payroll-bot/internal/domain/payroll"
)

// Произвольная сводка за период: суммарная выручка (онлайн + офлайн)
// и поездки, сгруппированные по водителю либо по машине. Как и недельный
// движок, чистая трансформация: вход не мутируется, пустой вход — пустой срез.

// Totals — итог одной группы (водителя или машины).
type Totals struct {
	Name     string
	Earnings float64
	Trips    int
}

// DriverTotals — итоги по водителям, богатые сверху.
func DriverTotals(list []entries.Entry, f Filter) []Totals {
	return totalsBy(list, f, func(e entries.Entry) string { return e.Driver })
}

// VehicleTotals — итоги по машинам.
func VehicleTotals(list []entries.Entry, f Filter) []Totals {
	return totalsBy(list, f, func(e entries.Entry) string { return e.Vehicle })
}

func totalsBy(list []entries.Entry, f Filter, groupOf func(entries.Entry) string) []Totals {
	type group struct {
		earnings float64
		trips    int
	}

	groups := map[string]*group{}
	order := []string{} // порядок первого появления — стабильный tie-break

	for _, e := range list {
		if !matches(e, f) {
			continue
		}
		name := groupOf(e)
		g, ok := groups[name]
		if !ok {
			g = &group{}
			groups[name] = g
			order = append(order, name)
		}
		g.earnings += e.Earnings + e.OfflineEarnings
		g.trips += e.Trips
	}

	out := make([]Totals, 0, len(order))
	for _, name := range order {
		g := groups[name]
		out = append(out, Totals{
			Name:     name,
			Earnings: payroll.Round2(g.earnings),
			Trips:    g.trips,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Earnings > out[j].Earnings
	})
	return out
}
