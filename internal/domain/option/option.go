// Package option holds the selector entries offered for the century and classification facets.
package option

// Kind names an option list.
type Kind string

// Option list kinds.
const (
	Centuries       Kind = "century"
	Classifications Kind = "classification"
)

// IsValid checks if the kind is a known option list.
func (k Kind) IsValid() bool {
	return k == Centuries || k == Classifications
}

// Option is one selectable entry: the catalog id and the display name.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// List is an ordered option list as returned by the catalog.
type List []Option

// Names returns the display names in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, o := range l {
		names[i] = o.Name
	}
	return names
}

// Contains reports whether name is one of the entries.
func (l List) Contains(name string) bool {
	for _, o := range l {
		if o.Name == name {
			return true
		}
	}
	return false
}
