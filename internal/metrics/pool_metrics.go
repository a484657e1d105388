package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PoolSnapshot is the subset of connection pool counters we export.
type PoolSnapshot struct {
	Total    int32
	Acquired int32
	Idle     int32
	Max      int32
}

// RegisterPoolGauges exports pool connection gauges read lazily from stats
// on every scrape.
func RegisterPoolGauges(registerer prometheus.Registerer, stats func() PoolSnapshot) error {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	gauges := []struct {
		name, help string
		value      func(PoolSnapshot) int32
	}{
		{"backoffice_db_pool_connections_total", "Open database connections", func(s PoolSnapshot) int32 { return s.Total }},
		{"backoffice_db_pool_connections_acquired", "Database connections in use", func(s PoolSnapshot) int32 { return s.Acquired }},
		{"backoffice_db_pool_connections_idle", "Idle database connections", func(s PoolSnapshot) int32 { return s.Idle }},
		{"backoffice_db_pool_connections_max", "Maximum database connections", func(s PoolSnapshot) int32 { return s.Max }},
	}

	for _, g := range gauges {
		read := g.value
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: g.name, Help: g.help}, func() float64 {
			return float64(read(stats()))
		})
		if err := registerer.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
