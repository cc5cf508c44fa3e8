package view

import (
	"github.com/rohanthewiz/element"

	"github.com/kailas-cloud/artcollector/internal/domain/object"
)

// Searchable is a fact value that re-queries the catalog by term and value when clicked.
// The page script intercepts the click, so the anchor never navigates.
type Searchable struct {
	Term  object.Term
	Value string
}

// Render implements element.Component.
func (s Searchable) Render(b *element.Builder) (x any) {
	b.SpanClass("content").R(
		b.A(attrs("href", "#", "data-term", string(s.Term), "data-value", s.Value)...).T(esc(s.Value)),
	)
	return
}
