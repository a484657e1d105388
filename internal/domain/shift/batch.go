package shift

import (
	"context"

	"golang.org/x/sync/errgroup"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
)

// BatchOptions bounds batch execution.
type BatchOptions struct {
	// MaxBatchSize rejects larger batches. Zero means unlimited.
	MaxBatchSize int
	// Parallelism is the number of criteria executed at once. Values below 2 run sequentially.
	Parallelism int
}

// DefaultBatchOptions returns defaults for the HTTP service.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		MaxBatchSize: 50,
		Parallelism:  4,
	}
}

// Aggregator runs many criteria and merges their results.
type Aggregator struct {
	executor *Executor
	opts     BatchOptions
}

// NewAggregator creates a batch aggregator.
func NewAggregator(executor *Executor, opts BatchOptions) *Aggregator {
	return &Aggregator{executor: executor, opts: opts}
}

// ExecuteBatch validates every entry before touching storage, then runs them
// and returns the union of results. A shift matched by several entries keeps
// the position of its first occurrence in input order.
// Any storage failure fails the whole batch and discards partial results.
func (a *Aggregator) ExecuteBatch(ctx context.Context, batch []Criteria) ([]*Shift, error) {
	if a.opts.MaxBatchSize > 0 && len(batch) > a.opts.MaxBatchSize {
		return nil, apperror.NewValidation("too many criteria in batch").
			WithDetail("size", len(batch)).
			WithDetail("max", a.opts.MaxBatchSize)
	}
	for i, c := range batch {
		if err := c.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}
	}

	results, err := a.run(ctx, batch)
	if err != nil {
		return nil, err
	}
	return mergeFirstSeen(results), nil
}

func (a *Aggregator) run(ctx context.Context, batch []Criteria) ([][]*Shift, error) {
	results := make([][]*Shift, len(batch))

	if a.opts.Parallelism < 2 {
		for i, c := range batch {
			shifts, err := a.executor.Execute(ctx, Compose(c), c.Strategy())
			if err != nil {
				return nil, err
			}
			results[i] = shifts
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Parallelism)
	for i, c := range batch {
		g.Go(func() error {
			shifts, err := a.executor.Execute(gctx, Compose(c), c.Strategy())
			if err != nil {
				return err
			}
			results[i] = shifts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func mergeFirstSeen(results [][]*Shift) []*Shift {
	seen := make(map[id.ID]struct{})
	out := make([]*Shift, 0)
	for _, shifts := range results {
		for _, s := range shifts {
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
