// Package facet holds the query facets a visitor edits before submitting a search.
package facet

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/artcollector/internal/domain"
)

// Any is the selector value meaning "apply no filter for this facet".
const Any = "any"

// Name identifies one facet.
type Name string

// Facet names, matching the form field names.
const (
	Query          Name = "queryString"
	Century        Name = "century"
	Classification Name = "classification"
)

// IsValid checks if the name is one of the three facets.
func (n Name) IsValid() bool {
	return n == Query || n == Century || n == Classification
}

// Facets is the triple consumed by a faceted query. The zero value is not usable; call Default.
type Facets struct {
	queryString    string
	century        string
	classification string
}

// Default returns the initial facets: empty text and "any" selectors.
func Default() Facets {
	return Facets{century: Any, classification: Any}
}

// New builds facets from raw form values. The text facet is taken as is;
// empty selectors collapse to Any.
func New(queryString, century, classification string) Facets {
	return Facets{
		queryString:    queryString,
		century:        selector(century),
		classification: selector(classification),
	}
}

// QueryString returns the free-text facet.
func (f Facets) QueryString() string { return f.queryString }

// Century returns the century selector value.
func (f Facets) Century() string { return f.century }

// Classification returns the classification selector value.
func (f Facets) Classification() string { return f.classification }

// WithQuery returns a copy with only the text facet changed.
func (f Facets) WithQuery(q string) Facets {
	f.queryString = q
	return f
}

// WithCentury returns a copy with only the century facet changed.
func (f Facets) WithCentury(c string) Facets {
	f.century = selector(c)
	return f
}

// WithClassification returns a copy with only the classification facet changed.
func (f Facets) WithClassification(c string) Facets {
	f.classification = selector(c)
	return f
}

// With changes the named facet. Unknown names are rejected.
func (f Facets) With(name Name, value string) (Facets, error) {
	switch name {
	case Query:
		return f.WithQuery(value), nil
	case Century:
		return f.WithCentury(value), nil
	case Classification:
		return f.WithClassification(value), nil
	default:
		return f, fmt.Errorf("%w: unknown facet %q", domain.ErrInvalidFacet, name)
	}
}

// IsAny reports whether a selector value applies no filter.
func IsAny(v string) bool {
	return v == Any
}

func selector(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Any
	}
	return v
}
