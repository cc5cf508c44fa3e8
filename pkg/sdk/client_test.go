package artcollector

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/artcollector/internal/domain"
	healthuc "github.com/kailas-cloud/artcollector/internal/usecase/health"
	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

func TestNew_NoAPIKey(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no api key provided")
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(context.Background(), WithAPIKey("k"), WithBaseURL("not a url"))
	if err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestCreateStore_Memory(t *testing.T) {
	s, err := createStore(&clientConfig{driver: "memory"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass").apply(cfg2)
	if cfg2.driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg2.driver)
	}
	WithStandalone().apply(cfg2)
	if !cfg2.standalone {
		t.Error("expected standalone to be set")
	}

	cfg3 := &clientConfig{}
	WithAPIKey("k").apply(cfg3)
	WithBaseURL("http://catalog.local").apply(cfg3)
	WithTimeout(time.Second).apply(cfg3)
	WithOptionsTTL(time.Hour).apply(cfg3)
	WithDailyQuota(2500, true).apply(cfg3)
	WithCatalogProbe().apply(cfg3)
	if cfg3.apiKey != "k" || cfg3.baseURL != "http://catalog.local" {
		t.Errorf("catalog = (%q, %q)", cfg3.apiKey, cfg3.baseURL)
	}
	if cfg3.timeout != time.Second || cfg3.optionsTTL != time.Hour {
		t.Errorf("durations = (%v, %v)", cfg3.timeout, cfg3.optionsTTL)
	}
	if cfg3.dailyQuota != 2500 || !cfg3.enforceQuota {
		t.Errorf("quota = (%d, %v), want (2500, true)", cfg3.dailyQuota, cfg3.enforceQuota)
	}
	if !cfg3.probeCatalog {
		t.Error("expected catalog probe to be enabled")
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"cache": healthuc.CheckOK, "catalog": healthuc.CheckError},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", h.Status)
	}
	if h.Checks["catalog"] != "error" || h.Checks["cache"] != "ok" {
		t.Errorf("Checks = %v", h.Checks)
	}
}

func TestClient_Usage(t *testing.T) {
	resets := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	c := &Client{usageSvc: &mockUsage{fn: func(context.Context) (usageuc.Report, error) {
		return usageuc.Report{Used: 10, Limit: 100, Remaining: 90, Enforced: true, ResetsAt: resets}, nil
	}}}

	r, err := c.Usage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Used != 10 || r.Remaining != 90 || !r.Enforced || !r.ResetsAt.Equal(resets) {
		t.Errorf("report = %+v", r)
	}
}

func TestClient_Usage_Error(t *testing.T) {
	c := &Client{usageSvc: &mockUsage{fn: func(context.Context) (usageuc.Report, error) {
		return usageuc.Report{}, errors.New("cache down")
	}}}
	if _, err := c.Usage(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observeRecords("test", time.Now(), 3, errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observeRecords("search", time.Now().Add(-10*time.Millisecond), 10, nil)
	obs.observe("search", time.Now(), domain.ErrQuotaExceeded)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]int{}
	for _, f := range families {
		found[f.GetName()] = len(f.GetMetric())
	}
	if found["artcollector_sdk_operations_total"] != 2 {
		t.Errorf("operations samples = %d, want 2 (ok and quota_exceeded)",
			found["artcollector_sdk_operations_total"])
	}
	if found["artcollector_sdk_records_total"] != 1 {
		t.Errorf("records samples = %d, want 1", found["artcollector_sdk_records_total"])
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first observer: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second observer on the same registry: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observeRecords("test.op", time.Now(), 0, errors.New("test error"))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrQuotaExceeded, "quota_exceeded"},
		{domain.ErrInvalidTerm, "invalid"},
		{domain.ErrInvalidFacet, "invalid"},
		{domain.ErrNotFound, "not_found"},
		{domain.ErrFetchFailed, "error"},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
