// Package object models a catalog object as displayed in the feature panel.
package object

import "strings"

// Person is a constituent credited on an object.
type Person struct {
	DisplayName string `json:"displayname"`
}

// Image is one photograph of an object.
type Image struct {
	BaseImageURL string `json:"baseimageurl"`
}

// Object is a catalog record. Every field except Title and Dated is optional;
// an empty string or nil slice means the catalog did not supply it.
type Object struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Dated           string   `json:"dated"`
	PrimaryImageURL string   `json:"primaryimageurl,omitempty"`
	Description     string   `json:"description,omitempty"`
	Culture         string   `json:"culture,omitempty"`
	Style           string   `json:"style,omitempty"`
	Technique       string   `json:"technique,omitempty"`
	Medium          string   `json:"medium,omitempty"`
	Dimensions      string   `json:"dimensions,omitempty"`
	People          []Person `json:"people,omitempty"`
	Department      string   `json:"department,omitempty"`
	Division        string   `json:"division,omitempty"`
	Contact         string   `json:"contact,omitempty"`
	CreditLine      string   `json:"creditline,omitempty"`
	Images          []Image  `json:"images"`
}

// NormalizedMedium returns the medium lower-cased, the form the catalog matches on.
func (o *Object) NormalizedMedium() string {
	return strings.ToLower(o.Medium)
}

// HasImages reports whether at least one photograph is attached.
func (o *Object) HasImages() bool {
	return len(o.Images) > 0
}

// Term names a searchable fact: clicking its value re-queries the catalog by term and value.
type Term string

// Searchable fact terms.
const (
	TermCulture   Term = "culture"
	TermTechnique Term = "technique"
	TermMedium    Term = "medium"
	TermPerson    Term = "person"
)

// IsValid checks if the term is one of the searchable facts.
func (t Term) IsValid() bool {
	return t == TermCulture || t == TermTechnique || t == TermMedium || t == TermPerson
}
