// Package search drives the visitor-facing queries: option loading, faceted search,
// searchable fact lookups and paging.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/state"
	"github.com/kailas-cloud/artcollector/internal/usecase/workflow"
)

// Direction selects a paging link.
type Direction string

// Paging directions.
const (
	Next Direction = "next"
	Prev Direction = "prev"
)

// IsValid checks if the direction is next or prev.
func (d Direction) IsValid() bool { return d == Next || d == Prev }

// Service runs queries on behalf of a session.
type Service struct {
	options OptionSource
	catalog Catalog
	logger  *zap.Logger
}

// New creates a search service.
func New(options OptionSource, catalog Catalog, logger *zap.Logger) *Service {
	return &Service{options: options, catalog: catalog, logger: logger}
}

// LoadOptions fetches the century and classification lists the first time it is called
// for a session. Both fetches run concurrently; a failed fetch is logged and leaves that
// list empty. It never touches the loading flag.
func (s *Service) LoadOptions(ctx context.Context, sess *state.Session) {
	if !sess.ClaimOptionsLoad() {
		return
	}
	// The lists belong to the session, not to the request that happened to load them.
	ctx = context.WithoutCancel(ctx)

	var (
		wg                         sync.WaitGroup
		centuries, classifications option.List
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		centuries = s.loadList(ctx, option.Centuries, s.options.FetchAllCenturies)
	}()
	go func() {
		defer wg.Done()
		classifications = s.loadList(ctx, option.Classifications, s.options.FetchAllClassifications)
	}()
	wg.Wait()

	sess.SetOptions(centuries, classifications)
}

func (s *Service) loadList(
	ctx context.Context, kind option.Kind, fetch func(context.Context) (option.List, error),
) option.List {
	list, err := fetch(ctx)
	if err != nil {
		s.logger.Error("Failed to load options", zap.String("kind", string(kind)), zap.Error(err))
		return option.List{}
	}
	if list == nil {
		list = option.List{}
	}
	s.logger.Info("Options loaded",
		zap.String("kind", string(kind)),
		zap.Int("count", len(list)),
		zap.Strings("names", list.Names()),
	)
	return list
}

// Submit runs the faceted query with the session's facets as they are at this moment.
func (s *Service) Submit(ctx context.Context, sess *state.Session) workflow.Outcome {
	f := sess.Facets()
	return s.run(ctx, sess, workflow.TriggerSubmit, func(ctx context.Context) (resultset.ResultSet, error) {
		return s.catalog.FetchQueryResults(ctx, f)
	})
}

// Lookup runs the narrower query behind a searchable fact. The session's facets are untouched.
func (s *Service) Lookup(ctx context.Context, sess *state.Session, term object.Term, value string) workflow.Outcome {
	if !term.IsValid() {
		return workflow.Failed(fmt.Errorf("%w: %q", domain.ErrInvalidTerm, term))
	}
	if strings.TrimSpace(value) == "" {
		return workflow.Failed(fmt.Errorf("%w: empty value for %q", domain.ErrInvalidTerm, term))
	}
	return s.run(ctx, sess, workflow.TriggerSearchable, func(ctx context.Context) (resultset.ResultSet, error) {
		return s.catalog.FetchQueryResultsFromTermAndValue(ctx, term, value)
	})
}

// Page follows the next or prev link of the session's current result set.
func (s *Service) Page(ctx context.Context, sess *state.Session, dir Direction) workflow.Outcome {
	rs := sess.Snapshot().Results

	var link string
	switch {
	case dir == Next && rs.HasNext():
		link = rs.Info.Next
	case dir == Prev && rs.HasPrev():
		link = rs.Info.Prev
	default:
		return workflow.Failed(fmt.Errorf("%w: no %s page", domain.ErrNotFound, dir))
	}

	return s.run(ctx, sess, workflow.TriggerPage, func(ctx context.Context) (resultset.ResultSet, error) {
		return s.catalog.FetchPage(ctx, link)
	})
}

func (s *Service) run(
	ctx context.Context, sess *state.Session, trigger workflow.Trigger, fetch workflow.Fetch,
) workflow.Outcome {
	qctx, ticket := sess.Begin(ctx)
	defer ticket.Done()
	return workflow.Run(qctx, trigger, ticket, fetch, s.logger.With(zap.String("session", sess.ID())))
}
