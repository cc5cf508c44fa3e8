package health

import "context"

// CachePinger checks the KV store backing sessions' option cache and quota counter.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker checks that the museum catalog answers.
type CatalogChecker interface {
	HealthCheck(ctx context.Context) error
}
