package artcollector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
)

// Options returns the century and classification lists in catalog order.
// Lists are cached for the configured TTL.
func (c *Client) Options(ctx context.Context) (opts Options, err error) {
	start := time.Now()
	defer func() {
		c.obs.observeRecords("options", start, len(opts.Centuries)+len(opts.Classifications), err)
	}()

	centuries, err := c.options.FetchAllCenturies(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("centuries: %w", err)
	}
	classifications, err := c.options.FetchAllClassifications(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("classifications: %w", err)
	}
	return Options{
		Centuries:       toOptionEntries(centuries),
		Classifications: toOptionEntries(classifications),
	}, nil
}

// Search runs a faceted query and returns its first page.
func (c *Client) Search(ctx context.Context, q Query) (*Page, error) {
	return c.fetch(ctx, "search", func(ctx context.Context) (resultset.ResultSet, error) {
		return c.catalog.FetchQueryResults(ctx, facet.New(q.Keywords, q.Century, q.Classification))
	})
}

// Lookup returns objects whose term fact matches value, e.g. every object by one person.
func (c *Client) Lookup(ctx context.Context, term Term, value string) (*Page, error) {
	return c.fetch(ctx, "lookup", func(ctx context.Context) (resultset.ResultSet, error) {
		t := object.Term(term)
		if !t.IsValid() {
			return resultset.ResultSet{}, fmt.Errorf("%w: %q", domain.ErrInvalidTerm, term)
		}
		if strings.TrimSpace(value) == "" {
			return resultset.ResultSet{}, fmt.Errorf("%w: empty value for %s", domain.ErrInvalidTerm, term)
		}
		return c.catalog.FetchQueryResultsFromTermAndValue(ctx, t, value)
	})
}

// Next fetches the page after p. It returns ErrNotFound on the last page.
func (c *Client) Next(ctx context.Context, p *Page) (*Page, error) {
	if !p.HasNext() {
		return nil, fmt.Errorf("%w: no next page", domain.ErrNotFound)
	}
	return c.fetch(ctx, "page.next", func(ctx context.Context) (resultset.ResultSet, error) {
		return c.catalog.FetchPage(ctx, p.next)
	})
}

// Prev fetches the page before p. It returns ErrNotFound on the first page.
func (c *Client) Prev(ctx context.Context, p *Page) (*Page, error) {
	if !p.HasPrev() {
		return nil, fmt.Errorf("%w: no previous page", domain.ErrNotFound)
	}
	return c.fetch(ctx, "page.prev", func(ctx context.Context) (resultset.ResultSet, error) {
		return c.catalog.FetchPage(ctx, p.prev)
	})
}

func (c *Client) fetch(
	ctx context.Context, op string, load func(context.Context) (resultset.ResultSet, error),
) (page *Page, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if page != nil {
			n = len(page.Objects)
		}
		c.obs.observeRecords(op, start, n, err)
	}()

	rs, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toPage(&rs), nil
}

func toOptionEntries(l option.List) []OptionEntry {
	out := make([]OptionEntry, len(l))
	for i, o := range l {
		out[i] = OptionEntry{ID: o.ID, Name: o.Name}
	}
	return out
}

func toPage(rs *resultset.ResultSet) *Page {
	p := &Page{
		Total:   rs.Info.TotalRecords,
		Pages:   rs.Info.Pages,
		Number:  rs.Info.Page,
		Objects: make([]Object, len(rs.Records)),
		next:    rs.Info.Next,
		prev:    rs.Info.Prev,
	}
	for i := range rs.Records {
		p.Objects[i] = toObject(&rs.Records[i])
	}
	return p
}

func toObject(o *object.Object) Object {
	out := Object{
		ID:              o.ID,
		Title:           o.Title,
		Dated:           o.Dated,
		PrimaryImageURL: o.PrimaryImageURL,
		Description:     o.Description,
		Culture:         o.Culture,
		Style:           o.Style,
		Technique:       o.Technique,
		Medium:          o.Medium,
		Dimensions:      o.Dimensions,
		Department:      o.Department,
		Division:        o.Division,
		Contact:         o.Contact,
		CreditLine:      o.CreditLine,
	}
	for _, p := range o.People {
		out.People = append(out.People, p.DisplayName)
	}
	for _, img := range o.Images {
		out.Images = append(out.Images, img.BaseImageURL)
	}
	return out
}
