// Package fallback runs an ordered list of strategies until one succeeds.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/metrics"
)

// ErrExhausted is returned when every strategy of a chain failed
var ErrExhausted = errors.New("fallback: all strategies failed")

// Strategy is one stage of a fallback chain
type Strategy[T any] interface {
	// Name returns the stage name for logging and metrics
	Name() string
	// Attempt produces a result or an error that moves the chain on
	Attempt(ctx context.Context) (T, error)
}

type funcStrategy[T any] struct {
	name string
	fn   func(ctx context.Context) (T, error)
}

func (s funcStrategy[T]) Name() string { return s.name }

func (s funcStrategy[T]) Attempt(ctx context.Context) (T, error) { return s.fn(ctx) }

// Func adapts a function to a Strategy
func Func[T any](name string, fn func(ctx context.Context) (T, error)) Strategy[T] {
	return funcStrategy[T]{name: name, fn: fn}
}

// Result is the outcome of a chain run
type Result[T any] struct {
	Value T
	// Stage is the name of the strategy that produced Value
	Stage string
}

// Chain runs strategies in sequence
type Chain[T any] struct {
	pipeline   string
	strategies []Strategy[T]
}

// NewChain creates a chain; pipeline labels its logs and metrics
func NewChain[T any](pipeline string, strategies ...Strategy[T]) *Chain[T] {
	return &Chain[T]{
		pipeline:   pipeline,
		strategies: strategies,
	}
}

// Run attempts each strategy in order and returns the first success. When
// all fail the joined stage errors are returned, wrapped in ErrExhausted.
// A failed stage is never retried.
func (c *Chain[T]) Run(ctx context.Context) (Result[T], error) {
	log := logger.For(ctx).WithField("pipeline", c.pipeline)

	var errs []error
	for _, s := range c.strategies {
		value, err := s.Attempt(ctx)
		if err == nil {
			metrics.StageOutcomes.WithLabelValues(c.pipeline, s.Name(), "ok").Inc()
			log.WithField("stage", s.Name()).Info("stage succeeded")
			return Result[T]{Value: value, Stage: s.Name()}, nil
		}

		metrics.StageOutcomes.WithLabelValues(c.pipeline, s.Name(), "failed").Inc()
		log.WithField("stage", s.Name()).WithError(err).Warn("stage failed, falling back")
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	var zero Result[T]
	return zero, fmt.Errorf("%w: %w", ErrExhausted, errors.Join(errs...))
}
