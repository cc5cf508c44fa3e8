// Package workflow runs one catalog query under the loading/result protocol shared by
// every search trigger.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/metrics"
)

// Trigger names what started a query.
type Trigger string

// Query triggers.
const (
	TriggerSubmit     Trigger = "submit"
	TriggerSearchable Trigger = "searchable"
	TriggerPage       Trigger = "page"
)

// Sink receives the busy indicator and the published result set.
// SetResults returns domain.ErrStale when a newer query has taken over.
type Sink interface {
	SetLoading(loading bool)
	SetResults(rs resultset.ResultSet) error
}

// Fetch performs the catalog call.
type Fetch func(ctx context.Context) (resultset.ResultSet, error)

// Outcome is the result of one Run.
type Outcome struct {
	results resultset.ResultSet
	err     error
	stale   bool
}

// Published reports whether the result set reached the sink.
func (o Outcome) Published() bool { return o.err == nil && !o.stale }

// Stale reports whether the fetch succeeded but a newer query had already begun.
func (o Outcome) Stale() bool { return o.stale }

// Err returns the fetch failure, if any.
func (o Outcome) Err() error { return o.err }

// Results returns the fetched result set when the fetch succeeded.
func (o Outcome) Results() (resultset.ResultSet, bool) {
	return o.results, o.err == nil
}

// Run raises the loading flag, performs fetch, hands a successful result to the sink
// exactly once and lowers the loading flag on every path. Failures are logged and
// leave the sink's previous results in place. A panic inside fetch is reported as a failure.
func Run(ctx context.Context, trigger Trigger, sink Sink, fetch Fetch, logger *zap.Logger) (out Outcome) {
	sink.SetLoading(true)
	defer sink.SetLoading(false)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: panic: %v", domain.ErrFetchFailed, r)
			logger.Error("Query failed", zap.String("trigger", string(trigger)), zap.Error(err))
			metrics.WorkflowTotal.WithLabelValues(string(trigger), "failed").Inc()
			out = Outcome{err: err}
		}
	}()

	rs, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			logger.Debug("Query superseded", zap.String("trigger", string(trigger)))
		} else {
			logger.Error("Query failed", zap.String("trigger", string(trigger)), zap.Error(err))
		}
		metrics.WorkflowTotal.WithLabelValues(string(trigger), "failed").Inc()
		return Outcome{err: err}
	}

	if err := sink.SetResults(rs); err != nil {
		if !errors.Is(err, domain.ErrStale) {
			logger.Error("Publishing results failed", zap.String("trigger", string(trigger)), zap.Error(err))
		}
		metrics.WorkflowTotal.WithLabelValues(string(trigger), "stale").Inc()
		return Outcome{results: rs, stale: true}
	}

	metrics.WorkflowTotal.WithLabelValues(string(trigger), "published").Inc()
	logger.Debug("Results published",
		zap.String("trigger", string(trigger)),
		zap.Int("records", rs.Len()),
		zap.Int("total", rs.Info.TotalRecords),
	)
	return Outcome{results: rs}
}

// Failed is the outcome of a query rejected before it reached the catalog.
func Failed(err error) Outcome {
	return Outcome{err: err}
}
