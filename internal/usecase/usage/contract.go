package usage

import "context"

// Counter counts catalog requests for the current UTC day.
type Counter interface {
	Incr(ctx context.Context) (int64, error)
	Used(ctx context.Context) (int64, error)
}
