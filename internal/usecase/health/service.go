package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates one dependency is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates every dependency is failing.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped marks a component that is not probed.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	cache   CachePinger
	catalog CatalogChecker
	timeout time.Duration
}

// New creates a Service. catalog can be nil to avoid spending quota on probes.
func New(cache CachePinger, catalog CatalogChecker) *Service {
	return &Service{cache: cache, catalog: catalog, timeout: 3 * time.Second}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		"cache":   s.probe(ctx, s.cache.Ping),
		"catalog": CheckSkipped,
	}
	if s.catalog != nil {
		checks["catalog"] = s.probe(ctx, s.catalog.HealthCheck)
	}

	var probed, failed int
	for _, v := range checks {
		if v == CheckSkipped {
			continue
		}
		probed++
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == probed:
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}

func (s *Service) probe(ctx context.Context, fn func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
