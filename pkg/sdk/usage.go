package artcollector

import (
	"context"
	"fmt"
	"time"

	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

// UsageReport is today's catalog request usage (UTC day).
type UsageReport struct {
	Used      int64
	Limit     int64 // 0 = unlimited
	Remaining int64 // -1 when unlimited
	Exhausted bool
	Enforced  bool
	ResetsAt  time.Time
}

// Usage returns how many catalog requests were spent today.
// With a shared Valkey or Redis cache the count covers every client using it.
func (c *Client) Usage(ctx context.Context) (r UsageReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, err) }()

	report, err := c.usageSvc.GetReport(ctx)
	if err != nil {
		return UsageReport{}, fmt.Errorf("usage: %w", err)
	}
	return UsageReport{
		Used:      report.Used,
		Limit:     report.Limit,
		Remaining: report.Remaining,
		Exhausted: report.Exhausted,
		Enforced:  report.Enforced,
		ResetsAt:  report.ResetsAt,
	}, nil
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context) (usageuc.Report, error)
}
