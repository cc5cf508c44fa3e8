package view

import (
	"strconv"

	"github.com/rohanthewiz/element"

	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
)

// Preview lists the current result page. Each record links to its feature view.
type Preview struct {
	Results *resultset.ResultSet
}

// Render implements element.Component.
func (p Preview) Render(b *element.Builder) (x any) {
	b.Aside("id", "preview").R(
		b.Header("class", "pagination").R(
			pageLink(b, "previous", "prev", "Previous", p.Results.HasPrev()),
			summary(b, p.Results),
			pageLink(b, "next", "next", "Next", p.Results.HasNext()),
		),
		b.Section("class", "results").R(
			func() (x any) {
				if p.Results == nil {
					return
				}
				for i, rec := range p.Results.Records {
					title := rec.Title
					if title == "" {
						title = "MISSING INFO"
					}
					b.DivClass("object-preview").R(
						b.A("href", "/feature/"+strconv.Itoa(i)).R(
							func() (x any) {
								if rec.PrimaryImageURL != "" {
									b.Img(attrs("src", rec.PrimaryImageURL, "alt", rec.Title)...)
								}
								return
							}(),
							b.H3().T(esc(title)),
						),
					)
				}
				return
			}(),
		),
	)
	return
}

func pageLink(b *element.Builder, class, dir, label string, enabled bool) (x any) {
	if !enabled {
		b.SpanClass(class + " disabled").T(label)
		return
	}
	b.A("class", class, "href", "/page?dir="+dir).T(label)
	return
}

func summary(b *element.Builder, rs *resultset.ResultSet) (x any) {
	if rs == nil {
		return
	}
	text := strconv.Itoa(rs.Info.TotalRecords) + " results"
	if rs.Info.Pages > 0 {
		text += ", page " + strconv.Itoa(rs.Info.Page) + " of " + strconv.Itoa(rs.Info.Pages)
	}
	b.SpanClass("summary").T(text)
	return
}
