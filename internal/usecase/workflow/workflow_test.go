package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/metrics"
)

func init() {
	metrics.RegisterCatalogMetrics()
}

type call struct {
	name    string
	loading bool
	results resultset.ResultSet
}

type recordingSink struct {
	calls    []call
	staleErr error
}

func (s *recordingSink) SetLoading(loading bool) {
	s.calls = append(s.calls, call{name: "loading", loading: loading})
}

func (s *recordingSink) SetResults(rs resultset.ResultSet) error {
	s.calls = append(s.calls, call{name: "results", results: rs})
	return s.staleErr
}

func (s *recordingSink) resultCalls() int {
	n := 0
	for _, c := range s.calls {
		if c.name == "results" {
			n++
		}
	}
	return n
}

func samplePage() resultset.ResultSet {
	return resultset.ResultSet{
		Info:    resultset.Info{TotalRecords: 1, Pages: 1, Page: 1},
		Records: []object.Object{{ID: 7, Title: "Still Life"}},
	}
}

func TestRun_Success(t *testing.T) {
	sink := &recordingSink{}
	want := samplePage()

	out := Run(context.Background(), TriggerSubmit, sink, func(context.Context) (resultset.ResultSet, error) {
		// Loading is already raised when the fetch runs.
		require.Len(t, sink.calls, 1)
		assert.True(t, sink.calls[0].loading)
		return want, nil
	}, zap.NewNop())

	require.True(t, out.Published())
	require.NoError(t, out.Err())
	got, ok := out.Results()
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.Len(t, sink.calls, 3)
	assert.Equal(t, call{name: "loading", loading: true}, sink.calls[0])
	assert.Equal(t, call{name: "results", results: want}, sink.calls[1])
	assert.Equal(t, call{name: "loading", loading: false}, sink.calls[2])
}

func TestRun_FailureLeavesResultsAlone(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	sink := &recordingSink{}
	boom := domain.NewStatusError("object", 500)

	out := Run(context.Background(), TriggerSearchable, sink, func(context.Context) (resultset.ResultSet, error) {
		return resultset.ResultSet{}, boom
	}, zap.New(core))

	assert.False(t, out.Published())
	assert.ErrorIs(t, out.Err(), domain.ErrFetchFailed)
	_, ok := out.Results()
	assert.False(t, ok)

	assert.Equal(t, 0, sink.resultCalls())
	require.Len(t, sink.calls, 2)
	assert.True(t, sink.calls[0].loading)
	assert.False(t, sink.calls[1].loading)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Query failed", logs.All()[0].Message)
}

func TestRun_PanicIsRecovered(t *testing.T) {
	sink := &recordingSink{}

	out := Run(context.Background(), TriggerPage, sink, func(context.Context) (resultset.ResultSet, error) {
		panic("decoder exploded")
	}, zap.NewNop())

	assert.ErrorIs(t, out.Err(), domain.ErrFetchFailed)
	assert.Equal(t, 0, sink.resultCalls())
	require.Len(t, sink.calls, 2)
	assert.False(t, sink.calls[1].loading, "loading must be cleared after a panic")
}

func TestRun_StaleSink(t *testing.T) {
	sink := &recordingSink{staleErr: domain.ErrStale}

	out := Run(context.Background(), TriggerSubmit, sink, func(context.Context) (resultset.ResultSet, error) {
		return samplePage(), nil
	}, zap.NewNop())

	assert.True(t, out.Stale())
	assert.False(t, out.Published())
	assert.NoError(t, out.Err())
	assert.Equal(t, 1, sink.resultCalls())
	assert.False(t, sink.calls[len(sink.calls)-1].loading)
}

func TestRun_CancelledContextIsQuiet(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := Run(ctx, TriggerSubmit, &recordingSink{}, func(ctx context.Context) (resultset.ResultSet, error) {
		return resultset.ResultSet{}, ctx.Err()
	}, zap.New(core))

	assert.True(t, errors.Is(out.Err(), context.Canceled))
	assert.Equal(t, 0, logs.Len())
}

func TestRun_EmptyResultIsPublished(t *testing.T) {
	sink := &recordingSink{}
	empty := resultset.ResultSet{Info: resultset.Info{TotalRecords: 0}, Records: []object.Object{}}

	out := Run(context.Background(), TriggerSubmit, sink, func(context.Context) (resultset.ResultSet, error) {
		return empty, nil
	}, zap.NewNop())

	require.True(t, out.Published())
	assert.Equal(t, 1, sink.resultCalls())
}
