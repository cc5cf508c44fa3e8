// Package resultset holds one page of catalog query results.
package resultset

import "github.com/kailas-cloud/artcollector/internal/domain/object"

// Info is the paging envelope the catalog returns alongside records.
type Info struct {
	TotalRecordsPerQuery int    `json:"totalrecordsperquery"`
	TotalRecords         int    `json:"totalrecords"`
	Pages                int    `json:"pages"`
	Page                 int    `json:"page"`
	Next                 string `json:"next,omitempty"`
	Prev                 string `json:"prev,omitempty"`
}

// ResultSet is a page of records. It is replaced wholesale, never merged.
type ResultSet struct {
	Info    Info            `json:"info"`
	Records []object.Object `json:"records"`
}

// Len returns the number of records on this page.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Records)
}

// At returns the record at index i, or false when out of range.
func (r *ResultSet) At(i int) (object.Object, bool) {
	if r == nil || i < 0 || i >= len(r.Records) {
		return object.Object{}, false
	}
	return r.Records[i], true
}

// HasNext reports whether the catalog advertised a following page.
func (r *ResultSet) HasNext() bool { return r != nil && r.Info.Next != "" }

// HasPrev reports whether the catalog advertised a preceding page.
func (r *ResultSet) HasPrev() bool { return r != nil && r.Info.Prev != "" }
