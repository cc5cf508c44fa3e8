package artcollector

import (
	"context"

	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	healthuc "github.com/kailas-cloud/artcollector/internal/usecase/health"
	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

// --- catalogUseCase mock ---

type mockCatalog struct {
	queryFn func(ctx context.Context, f facet.Facets) (resultset.ResultSet, error)
	termFn  func(ctx context.Context, term object.Term, value string) (resultset.ResultSet, error)
	pageFn  func(ctx context.Context, link string) (resultset.ResultSet, error)
}

func (m *mockCatalog) FetchQueryResults(ctx context.Context, f facet.Facets) (resultset.ResultSet, error) {
	return m.queryFn(ctx, f)
}

func (m *mockCatalog) FetchQueryResultsFromTermAndValue(
	ctx context.Context, term object.Term, value string,
) (resultset.ResultSet, error) {
	return m.termFn(ctx, term, value)
}

func (m *mockCatalog) FetchPage(ctx context.Context, link string) (resultset.ResultSet, error) {
	return m.pageFn(ctx, link)
}

// --- optionsUseCase mock ---

type mockOptions struct {
	centuriesFn       func(ctx context.Context) (option.List, error)
	classificationsFn func(ctx context.Context) (option.List, error)
}

func (m *mockOptions) FetchAllCenturies(ctx context.Context) (option.List, error) {
	return m.centuriesFn(ctx)
}

func (m *mockOptions) FetchAllClassifications(ctx context.Context) (option.List, error) {
	return m.classificationsFn(ctx)
}

// --- healthUseCase mock ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- usageUseCase mock ---

type mockUsage struct {
	fn func(ctx context.Context) (usageuc.Report, error)
}

func (m *mockUsage) GetReport(ctx context.Context) (usageuc.Report, error) { return m.fn(ctx) }
