package artcollector

// Term names a fact of an object that can be searched by value.
type Term string

// Searchable terms.
const (
	TermCulture   Term = "culture"
	TermTechnique Term = "technique"
	TermMedium    Term = "medium"
	TermPerson    Term = "person"
)

// Any is the selector value that applies no century or classification filter.
const Any = "any"

// Query is a faceted catalog search. Empty selectors mean Any.
type Query struct {
	Keywords       string
	Century        string
	Classification string
}

// OptionEntry is one selectable century or classification.
type OptionEntry struct {
	ID   int
	Name string
}

// Options are the selector lists offered for a Query.
type Options struct {
	Centuries       []OptionEntry
	Classifications []OptionEntry
}

// Object is a catalog record. Empty strings mean the catalog did not supply the fact.
type Object struct {
	ID              int
	Title           string
	Dated           string
	PrimaryImageURL string
	Description     string
	Culture         string
	Style           string
	Technique       string
	Medium          string
	Dimensions      string
	People          []string
	Department      string
	Division        string
	Contact         string
	CreditLine      string
	Images          []string
}

// Page is one page of catalog results. Use Client.Next and Client.Prev to move through pages.
type Page struct {
	Total   int
	Pages   int
	Number  int
	Objects []Object

	next string
	prev string
}

// HasNext reports whether a following page exists.
func (p *Page) HasNext() bool { return p != nil && p.next != "" }

// HasPrev reports whether a preceding page exists.
func (p *Page) HasPrev() bool { return p != nil && p.prev != "" }
