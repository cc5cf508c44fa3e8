package view

import (
	"strings"

	"github.com/rohanthewiz/element"

	"github.com/kailas-cloud/artcollector/internal/domain/object"
)

// Fact is one title/content pair of the facts section. Term is set for searchable facts.
type Fact struct {
	Title string
	Value string
	Term  object.Term
}

// Searchable reports whether the fact renders as a Searchable. A blank value has nothing to look up.
func (f Fact) Searchable() bool { return f.Term != "" && strings.TrimSpace(f.Value) != "" }

// Facts lists the facts of o in display order. Empty fields are skipped;
// every person yields a block, named or not.
func Facts(o *object.Object) []Fact {
	if o == nil {
		return nil
	}

	var facts []Fact
	add := func(title, value string, term object.Term) {
		if value != "" {
			facts = append(facts, Fact{Title: title, Value: value, Term: term})
		}
	}

	add("Description", o.Description, "")
	add("Culture", o.Culture, object.TermCulture)
	add("Style", o.Style, "")
	add("Technique", o.Technique, object.TermTechnique)
	add("Medium", o.NormalizedMedium(), object.TermMedium)
	add("Dimensions", o.Dimensions, "")
	for _, p := range o.People {
		facts = append(facts, Fact{Title: "Person", Value: p.DisplayName, Term: object.TermPerson})
	}
	add("Department", o.Department, "")
	add("Division", o.Division, "")
	add("Contact", o.Contact, "")
	add("Credit", o.CreditLine, "")
	return facts
}

// Feature renders the featured object, or an empty placeholder when there is none.
type Feature struct {
	Object *object.Object
}

// Render implements element.Component.
func (f Feature) Render(b *element.Builder) (x any) {
	if f.Object == nil {
		b.Main("id", "feature").R()
		return
	}
	o := f.Object

	b.Main("id", "feature").R(
		b.DivClass("object-feature").R(
			b.Header().R(
				b.H3().T(esc(o.Title)),
				b.H4().T(esc(o.Dated)),
			),
			b.Section("class", "facts").R(
				func() (x any) {
					for _, fact := range Facts(o) {
						b.SpanClass("title").T(fact.Title)
						if fact.Searchable() {
							Searchable{Term: fact.Term, Value: fact.Value}.Render(b)
						} else {
							b.SpanClass("content").T(esc(fact.Value))
						}
					}
					return
				}(),
			),
			b.Section("class", "photos").R(
				func() (x any) {
					if !o.HasImages() {
						return
					}
					for _, img := range o.Images {
						b.Img(attrs("src", img.BaseImageURL, "alt", o.Title)...)
					}
					return
				}(),
			),
		),
	)
	return
}
