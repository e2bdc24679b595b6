package posplot

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes per-table production counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	entries *prometheus.CounterVec
	matches *prometheus.CounterVec
}

// NewMetrics builds the counter set and registers it with reg when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posplot_entries_produced_total",
			Help: "Number of table entries produced, by table index",
		}, []string{"table"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posplot_matches_found_total",
			Help: "Number of matched bucket pairs found, by output table index",
		}, []string{"table"}),
	}
	if reg != nil {
		reg.MustRegister(m.entries, m.matches)
	}
	return m
}

func (m *Metrics) addEntries(table int, n uint64) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues(strconv.Itoa(table)).Add(float64(n))
}

func (m *Metrics) addMatches(table int, n uint64) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(strconv.Itoa(table)).Add(float64(n))
}
