package artcollector

import "github.com/kailas-cloud/artcollector/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrFetchFailed   = domain.ErrFetchFailed
	ErrNotFound      = domain.ErrNotFound
	ErrInvalidFacet  = domain.ErrInvalidFacet
	ErrInvalidTerm   = domain.ErrInvalidTerm
	ErrQuotaExceeded = domain.ErrQuotaExceeded
)
