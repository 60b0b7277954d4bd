package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CheckIns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "inacap_checkins_total", Help: "Total confirmed event check-ins"},
	)
	DuplicateScans = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "inacap_duplicate_scans_total", Help: "Total check-in attempts rejected as duplicates"},
	)
	Logins = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "inacap_logins_total", Help: "Total successful logins"},
	)
	Draws = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "inacap_draws_total", Help: "Total recorded prize draws"},
	)
)

func Register() {
	prometheus.MustRegister(CheckIns, DuplicateScans, Logins, Draws)
}
