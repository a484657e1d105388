package shift

import (
	"context"
	"time"

	"backoffice/pkg/logger"
)

// Metrics receives search observations. Implemented by internal/metrics.
type Metrics interface {
	ObserveSearch(mode string, strategy string, shifts int, elapsed time.Duration, err error)
}

// Search modes reported to Metrics.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

type nopMetrics struct{}

func (nopMetrics) ObserveSearch(string, string, int, time.Duration, error) {}

// Engine is the search entry point: criteria in, assembled views out.
// Stateless after construction; safe for concurrent use.
type Engine struct {
	executor   *Executor
	aggregator *Aggregator
	metrics    Metrics
}

// NewEngine wires the search pipeline over a reader.
// metrics may be nil.
func NewEngine(reader Reader, opts BatchOptions, metrics Metrics) *Engine {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	executor := NewExecutor(reader)
	return &Engine{
		executor:   executor,
		aggregator: NewAggregator(executor, opts),
		metrics:    metrics,
	}
}

// Executor exposes the underlying executor for id lookups.
func (e *Engine) Executor() *Executor {
	return e.executor
}

// Search runs one criteria. An empty result is a valid outcome.
func (e *Engine) Search(ctx context.Context, c Criteria) ([]ShiftView, error) {
	start := time.Now()
	strategy := c.Strategy()

	views, err := e.search(ctx, c)
	e.metrics.ObserveSearch(ModeSingle, strategy.String(), len(views), time.Since(start), err)

	if err != nil {
		logger.Warn(ctx, "shift search failed", "strategy", strategy.String(), "error", err)
		return nil, err
	}
	logger.Debug(ctx, "shift search",
		"strategy", strategy.String(),
		"shifts", len(views),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return views, nil
}

func (e *Engine) search(ctx context.Context, c Criteria) ([]ShiftView, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	shifts, err := e.executor.Execute(ctx, Compose(c), c.Strategy())
	if err != nil {
		return nil, err
	}
	return AssembleAll(shifts)
}

// SearchBatch runs every criteria and merges the results by first occurrence.
func (e *Engine) SearchBatch(ctx context.Context, batch []Criteria) ([]ShiftView, error) {
	start := time.Now()

	views, err := e.searchBatch(ctx, batch)
	e.metrics.ObserveSearch(ModeBatch, batchStrategy(batch), len(views), time.Since(start), err)

	if err != nil {
		logger.Warn(ctx, "shift batch search failed", "criteria", len(batch), "error", err)
		return nil, err
	}
	logger.Debug(ctx, "shift batch search",
		"criteria", len(batch),
		"shifts", len(views),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return views, nil
}

func (e *Engine) searchBatch(ctx context.Context, batch []Criteria) ([]ShiftView, error) {
	shifts, err := e.aggregator.ExecuteBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	return AssembleAll(shifts)
}

// batchStrategy labels a batch "deep" when any entry is deep.
func batchStrategy(batch []Criteria) string {
	for _, c := range batch {
		if c.Deep {
			return Deep.String()
		}
	}
	return Shallow.String()
}
