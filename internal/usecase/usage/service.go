package usage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/metrics"
	"github.com/kailas-cloud/artcollector/internal/repository/quota"
)

// Report is today's catalog request usage.
type Report struct {
	Used      int64     `json:"used"`
	Limit     int64     `json:"limit"`     // 0 = unlimited
	Remaining int64     `json:"remaining"` // -1 when unlimited
	Exhausted bool      `json:"exhausted"`
	Enforced  bool      `json:"enforced"`
	ResetsAt  time.Time `json:"resets_at"`
}

// Service meters catalog requests against a daily limit.
type Service struct {
	counter Counter
	limit   int64
	enforce bool
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a Service. limit 0 means unlimited; enforce=false only warns when over.
func New(counter Counter, limit int64, enforce bool, logger *zap.Logger) *Service {
	return &Service{counter: counter, limit: limit, enforce: enforce, logger: logger, now: time.Now}
}

// Acquire counts one outgoing request. It rejects only when enforcing and over the limit;
// counter failures are logged and never block a request.
func (s *Service) Acquire(ctx context.Context) error {
	used, err := s.counter.Incr(ctx)
	if err != nil {
		s.logger.Warn("Failed to count catalog request", zap.Error(err))
		return nil
	}
	metrics.QuotaUsed.Set(float64(used))

	if s.limit <= 0 || used <= s.limit {
		return nil
	}
	if s.enforce {
		return fmt.Errorf("%w: %d of %d requests used today", domain.ErrQuotaExceeded, used, s.limit)
	}
	s.logger.Warn("Catalog daily quota exceeded",
		zap.Int64("used", used),
		zap.Int64("limit", s.limit),
	)
	return nil
}

// GetReport builds today's usage report.
func (s *Service) GetReport(ctx context.Context) (Report, error) {
	used, err := s.counter.Used(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read usage: %w", err)
	}

	r := Report{
		Used:      used,
		Limit:     s.limit,
		Remaining: -1,
		Enforced:  s.enforce,
		ResetsAt:  quota.ResetsAt(s.now()),
	}
	if s.limit > 0 {
		r.Remaining = max(s.limit-used, 0)
		r.Exhausted = r.Remaining == 0
	}
	return r, nil
}
