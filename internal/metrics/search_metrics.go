// Package metrics exposes Prometheus collectors for the shift search engine
// and the database pool.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"backoffice/internal/core/apperror"
)

// Outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeStorage    = "storage"
	OutcomeMapping    = "mapping"
	OutcomeError      = "error"
)

// SearchMetrics implements shift.Metrics.
type SearchMetrics struct {
	searches *prometheus.CounterVec
	duration *prometheus.HistogramVec
	shifts   *prometheus.HistogramVec
}

// NewSearchMetrics registers search collectors with registerer.
// A nil registerer means the default one.
func NewSearchMetrics(registerer prometheus.Registerer) *SearchMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &SearchMetrics{
		searches: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "backoffice_shift_searches_total",
			Help: "Total number of shift searches by mode, strategy and outcome",
		}, []string{"mode", "strategy", "outcome"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "backoffice_shift_search_duration_seconds",
			Help:    "Duration of shift searches in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"mode", "strategy"}),
		shifts: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "backoffice_shift_search_results",
			Help:    "Number of shifts returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}, []string{"mode"}),
	}
}

// ObserveSearch records one finished search.
func (m *SearchMetrics) ObserveSearch(mode, strategy string, shifts int, elapsed time.Duration, err error) {
	m.searches.WithLabelValues(mode, strategy, Outcome(err)).Inc()
	m.duration.WithLabelValues(mode, strategy).Observe(elapsed.Seconds())
	if err == nil {
		m.shifts.WithLabelValues(mode).Observe(float64(shifts))
	}
}

// Outcome classifies an error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case apperror.IsValidation(err):
		return OutcomeValidation
	case apperror.IsNotFound(err):
		return OutcomeNotFound
	case apperror.IsStorage(err):
		return OutcomeStorage
	case apperror.IsMapping(err):
		return OutcomeMapping
	default:
		return OutcomeError
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
