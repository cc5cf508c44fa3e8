package view

import (
	"strconv"

	"github.com/rohanthewiz/element"

	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
)

// SearchForm is the facet form. Each selector lists "Any" followed by one option per entry,
// and its label shows the list length.
type SearchForm struct {
	Facets          facet.Facets
	Centuries       option.List
	Classifications option.List
}

// Render implements element.Component.
func (s SearchForm) Render(b *element.Builder) (x any) {
	b.Form("id", "search", "method", "post", "action", "/search").R(
		b.Fieldset().R(
			b.Label("for", "keywords").T("Query"),
			b.Input(attrs(
				"id", "keywords",
				"name", string(facet.Query),
				"type", "text",
				"placeholder", "enter keywords...",
				"value", s.Facets.QueryString(),
			)...),
		),
		b.Fieldset().R(
			b.Label("for", "select-classification").R(
				b.T("Classification "),
				b.SpanClass("classification-count").T(count(s.Classifications)),
			),
			selector(b, string(facet.Classification), "select-classification", "classification-id",
				s.Classifications, s.Facets.Classification()),
		),
		b.Fieldset().R(
			b.Label("for", "select-century").R(
				b.T("Century "),
				b.SpanClass("century-count").T(count(s.Centuries)),
			),
			selector(b, string(facet.Century), "select-century", "century-id",
				s.Centuries, s.Facets.Century()),
		),
		b.Button("type", "submit").T("SEARCH"),
	)
	return
}

func count(l option.List) string {
	return "(" + strconv.Itoa(len(l)) + ")"
}

func selector(b *element.Builder, name, id, idAttr string, list option.List, selected string) (x any) {
	b.Select("name", name, "id", id).R(
		b.Option(optionAttrs(facet.Any, selected)...).T("Any"),
		func() (x any) {
			for _, o := range list {
				a := append(optionAttrs(o.Name, selected), idAttr, strconv.Itoa(o.ID))
				b.Option(a...).T(esc(o.Name))
			}
			return
		}(),
	)
	return
}

func optionAttrs(value, selected string) []string {
	a := attrs("value", value)
	if value == selected {
		a = append(a, "selected", "selected")
	}
	return a
}
