// Package metrics — счётчики Prometheus, отдаются через /metrics
// служебного HTTP-сервера.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EntriesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bncabs_entries_saved_total",
		Help: "Daily entries saved through the bot.",
	})

	ReportsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bncabs_weekly_reports_total",
		Help: "Weekly summary reports generated.",
	})

	ImportedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bncabs_imported_rows_total",
		Help: "Entry rows accepted from spreadsheet imports.",
	})

	ExportsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bncabs_exports_total",
		Help: "Spreadsheet exports sent to chats.",
	})
)
