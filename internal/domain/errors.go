package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed signals any catalog failure: network, non-success status or malformed payload.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFacet signals a facet value that cannot be applied to a query.
	ErrInvalidFacet = errors.New("invalid facet")
	// ErrInvalidTerm signals an unknown searchable fact term.
	ErrInvalidTerm = errors.New("invalid search term")
	// ErrQuotaExceeded signals that the daily catalog request limit is spent.
	ErrQuotaExceeded = errors.New("catalog quota exceeded")
	// ErrStale signals a completion that was superseded by a newer request.
	ErrStale = errors.New("superseded by newer request")
)

// KeyPrefix namespaces every key this service writes to the shared KV store.
const KeyPrefix = "artcollector:"

// StatusError wraps ErrFetchFailed with the HTTP status returned by the catalog.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned HTTP %d", ErrFetchFailed.Error(), e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrFetchFailed }

// NewStatusError creates a catalog status error.
func NewStatusError(endpoint string, status int) error {
	return &StatusError{StatusCode: status, Endpoint: endpoint}
}
