package view

import (
	"github.com/rohanthewiz/element"

	"github.com/kailas-cloud/artcollector/internal/state"
)

// clickScript posts searchable facts instead of following their anchors.
const clickScript = `document.addEventListener('click', function (e) {
  var a = e.target.closest('a[data-term]');
  if (!a) return;
  e.preventDefault();
  var f = document.createElement('form');
  f.method = 'post';
  f.action = '/search/term';
  [['term', a.dataset.term], ['value', a.dataset.value]].forEach(function (kv) {
    var i = document.createElement('input');
    i.type = 'hidden';
    i.name = kv[0];
    i.value = kv[1];
    f.appendChild(i);
  });
  document.body.appendChild(f);
  document.getElementById('loading').hidden = false;
  f.submit();
});
document.getElementById('search').addEventListener('submit', function () {
  document.getElementById('loading').hidden = false;
});`

const styles = `body { font-family: sans-serif; margin: 0; }
#app { display: grid; grid-template-columns: 1fr 2fr; gap: 1rem; padding: 1rem; }
#search, h1 { grid-column: 1 / -1; }
.facts { display: grid; grid-template-columns: max-content 1fr; gap: .25rem 1rem; }
.facts .title { font-weight: bold; }
.photos img { max-width: 100%; }
.object-preview img { max-width: 120px; }
.disabled { color: #999; }
#loading { position: fixed; inset: 0; background: rgba(255,255,255,.7); display: grid; place-items: center; }
#loading[hidden] { display: none; }`

// Page is the whole search page for one session snapshot.
type Page struct {
	Title    string
	Snapshot state.Snapshot
}

// Render implements element.Component.
func (p Page) Render(b *element.Builder) (x any) {
	title := p.Title
	if title == "" {
		title = "Art Collector"
	}
	snap := p.Snapshot

	b.Html().R(
		b.Head().R(
			b.Meta("charset", "utf-8"),
			b.Title().T(esc(title)),
			b.Style().T(styles),
		),
		b.Body().R(
			b.DivClass("app", "id", "app").R(
				b.H1().T(esc(title)),
				SearchForm{
					Facets:          snap.Facets,
					Centuries:       snap.Centuries,
					Classifications: snap.Classifications,
				}.Render(b),
				Preview{Results: snap.Results}.Render(b),
				Feature{Object: snap.Featured}.Render(b),
				loading(b, snap.Loading),
			),
			b.Script().T(clickScript),
		),
	)
	return
}

func loading(b *element.Builder, on bool) (x any) {
	if on {
		b.Div("id", "loading", "class", "active").R(b.H2().T("Searching..."))
		return
	}
	b.Div("id", "loading", "hidden", "hidden").R(b.H2().T("Searching..."))
	return
}

// Render returns the HTML for a component.
func Render(c element.Component) string {
	b := element.NewBuilder()
	c.Render(b)
	return b.String()
}
