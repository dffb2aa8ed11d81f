// Package ai wraps the generative analysis provider with resilience and
// supplies the ingredient pool for concept mashups.
package ai

import (
	"context"
	"errors"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/analysis"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerAnalyzer wraps an Analyzer with a circuit breaker so a misbehaving
// provider fails fast instead of tying up request handlers for the full
// timeout on every call. Call durations and failures are reported per
// operation through the metrics collector.
type BreakerAnalyzer struct {
	inner   ports.Analyzer
	cb      *gobreaker.CircuitBreaker
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewBreakerAnalyzer wraps the given analyzer. A nil collector disables
// metrics.
func NewBreakerAnalyzer(inner ports.Analyzer, metrics *observability.Collector, logger *zap.Logger) *BreakerAnalyzer {
	b := &BreakerAnalyzer{
		inner:   inner,
		metrics: metrics,
		logger:  logger,
	}

	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "analyzer",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("analyzer circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return b
}

var _ ports.Analyzer = (*BreakerAnalyzer)(nil)

// AnalyzeIdea produces a structured report for a startup idea.
func (b *BreakerAnalyzer) AnalyzeIdea(ctx context.Context, title, body string) (*analysis.Report, error) {
	result, err := b.execute("analyze", func() (interface{}, error) {
		return b.inner.AnalyzeIdea(ctx, title, body)
	})
	if err != nil {
		return nil, err
	}
	return result.(*analysis.Report), nil
}

// EvaluateHackathon scores a project the way a hackathon jury would.
func (b *BreakerAnalyzer) EvaluateHackathon(ctx context.Context, title, body string) (*analysis.HackathonReport, error) {
	result, err := b.execute("hackathon", func() (interface{}, error) {
		return b.inner.EvaluateHackathon(ctx, title, body)
	})
	if err != nil {
		return nil, err
	}
	return result.(*analysis.HackathonReport), nil
}

// CombineConcepts mashes two unrelated ingredients into a product concept.
func (b *BreakerAnalyzer) CombineConcepts(ctx context.Context, first, second string) (*analysis.FrankensteinConcept, error) {
	result, err := b.execute("frankenstein", func() (interface{}, error) {
		return b.inner.CombineConcepts(ctx, first, second)
	})
	if err != nil {
		return nil, err
	}
	return result.(*analysis.FrankensteinConcept), nil
}

func (b *BreakerAnalyzer) execute(operation string, fn func() (interface{}, error)) (interface{}, error) {
	start := time.Now()
	result, err := b.cb.Execute(fn)
	if b.metrics != nil {
		b.metrics.AICallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		reason := "provider_error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			reason = "circuit_open"
			err = pkgerrors.NewUnavailableError("analyzer")
		}
		if b.metrics != nil {
			b.metrics.AICallFailures.WithLabelValues(operation, reason).Inc()
		}
		return nil, err
	}
	return result, nil
}
