package ai

import (
	"context"
	"testing"

	"ideaforge-backend/domain/analysis"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyAnalyzer fails every call until healthy is flipped.
type flakyAnalyzer struct {
	healthy bool
	calls   int
}

func (f *flakyAnalyzer) AnalyzeIdea(ctx context.Context, title, body string) (*analysis.Report, error) {
	f.calls++
	if !f.healthy {
		return nil, pkgerrors.NewExternalError("gemini", assert.AnError)
	}
	return &analysis.Report{Summary: "ok"}, nil
}

func (f *flakyAnalyzer) EvaluateHackathon(ctx context.Context, title, body string) (*analysis.HackathonReport, error) {
	f.calls++
	if !f.healthy {
		return nil, pkgerrors.NewExternalError("gemini", assert.AnError)
	}
	return &analysis.HackathonReport{Summary: "ok"}, nil
}

func (f *flakyAnalyzer) CombineConcepts(ctx context.Context, first, second string) (*analysis.FrankensteinConcept, error) {
	f.calls++
	if !f.healthy {
		return nil, pkgerrors.NewExternalError("gemini", assert.AnError)
	}
	return &analysis.FrankensteinConcept{Name: "ok"}, nil
}

func TestBreakerPassesThrough(t *testing.T) {
	inner := &flakyAnalyzer{healthy: true}
	breaker := NewBreakerAnalyzer(inner, nil, zap.NewNop())

	report, err := breaker.AnalyzeIdea(context.Background(), "title", "body")
	require.NoError(t, err)
	assert.Equal(t, "ok", report.Summary)
}

func TestBreakerPropagatesProviderError(t *testing.T) {
	inner := &flakyAnalyzer{}
	breaker := NewBreakerAnalyzer(inner, nil, zap.NewNop())

	_, err := breaker.AnalyzeIdea(context.Background(), "title", "body")
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	inner := &flakyAnalyzer{}
	breaker := NewBreakerAnalyzer(inner, nil, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := breaker.AnalyzeIdea(ctx, "title", "body")
		require.Error(t, err)
	}

	callsBefore := inner.calls
	_, err := breaker.AnalyzeIdea(ctx, "title", "body")
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeUnavailable))
	assert.Equal(t, callsBefore, inner.calls, "open breaker should not reach the provider")
}

func TestBreakerRecordsCallMetrics(t *testing.T) {
	collector := observability.NewCollector("test")
	ctx := context.Background()

	t.Run("observes duration on success", func(t *testing.T) {
		breaker := NewBreakerAnalyzer(&flakyAnalyzer{healthy: true}, collector, zap.NewNop())

		samplesBefore := testutil.CollectAndCount(collector.AICallDuration)
		_, err := breaker.EvaluateHackathon(ctx, "title", "body")
		require.NoError(t, err)

		assert.Greater(t, testutil.CollectAndCount(collector.AICallDuration), samplesBefore)
	})

	t.Run("counts provider failures per operation", func(t *testing.T) {
		breaker := NewBreakerAnalyzer(&flakyAnalyzer{}, collector, zap.NewNop())

		failures := collector.AICallFailures.WithLabelValues("analyze", "provider_error")
		before := testutil.ToFloat64(failures)

		_, err := breaker.AnalyzeIdea(ctx, "title", "body")
		require.Error(t, err)

		assert.Equal(t, before+1, testutil.ToFloat64(failures))
	})

	t.Run("counts rejections while open", func(t *testing.T) {
		breaker := NewBreakerAnalyzer(&flakyAnalyzer{}, collector, zap.NewNop())

		for i := 0; i < 5; i++ {
			_, err := breaker.AnalyzeIdea(ctx, "title", "body")
			require.Error(t, err)
		}

		rejected := collector.AICallFailures.WithLabelValues("analyze", "circuit_open")
		before := testutil.ToFloat64(rejected)

		_, err := breaker.AnalyzeIdea(ctx, "title", "body")
		require.Error(t, err)

		assert.Equal(t, before+1, testutil.ToFloat64(rejected))
	})
}
