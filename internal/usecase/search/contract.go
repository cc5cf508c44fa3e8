package search

import (
	"context"

	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
)

// OptionSource supplies the selector lists.
type OptionSource interface {
	FetchAllCenturies(ctx context.Context) (option.List, error)
	FetchAllClassifications(ctx context.Context) (option.List, error)
}

// Catalog runs object queries.
type Catalog interface {
	FetchQueryResults(ctx context.Context, f facet.Facets) (resultset.ResultSet, error)
	FetchQueryResultsFromTermAndValue(ctx context.Context, term object.Term, value string) (resultset.ResultSet, error)
	FetchPage(ctx context.Context, link string) (resultset.ResultSet, error)
}
