package harvard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/metrics"
)

// maxBodyBytes caps a single catalog response.
const maxBodyBytes = 8 << 20

// Quota admits or rejects an outgoing catalog request.
type Quota interface {
	Acquire(ctx context.Context) error
}

// Client talks to the Harvard Art Museums API.
type Client struct {
	baseURL        *url.URL
	apiKey         string
	optionPageSize int
	http           *http.Client
	quota          Quota
	logger         *zap.Logger
}

// Config holds the catalog client settings.
type Config struct {
	BaseURL        string
	APIKey         string
	OptionPageSize int
	Timeout        time.Duration
	Logger         *zap.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg *Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q", cfg.BaseURL)
	}
	size := cfg.OptionPageSize
	if size <= 0 {
		size = 100
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:        u,
		apiKey:         cfg.APIKey,
		optionPageSize: size,
		http:           &http.Client{Timeout: cfg.Timeout},
		logger:         logger,
	}, nil
}

// WithQuota attaches a request quota. A nil quota admits everything.
func (c *Client) WithQuota(q Quota) *Client {
	c.quota = q
	return c
}

// FetchAllCenturies returns every century, in temporal order.
func (c *Client) FetchAllCenturies(ctx context.Context) (option.List, error) {
	return c.fetchOptions(ctx, option.Centuries, "temporalorder")
}

// FetchAllClassifications returns every classification, sorted by name.
func (c *Client) FetchAllClassifications(ctx context.Context) (option.List, error) {
	return c.fetchOptions(ctx, option.Classifications, "name")
}

// FetchQueryResults runs a faceted object query. Facets set to "any" are not sent.
func (c *Client) FetchQueryResults(ctx context.Context, f facet.Facets) (resultset.ResultSet, error) {
	params := url.Values{}
	if q := f.QueryString(); q != "" {
		params.Set("keyword", q)
	}
	if !facet.IsAny(f.Century()) {
		params.Set("century", f.Century())
	}
	if !facet.IsAny(f.Classification()) {
		params.Set("classification", f.Classification())
	}
	return c.fetchObjects(ctx, "object", c.endpoint("object", params))
}

// FetchQueryResultsFromTermAndValue runs the narrower lookup behind a searchable fact.
func (c *Client) FetchQueryResultsFromTermAndValue(
	ctx context.Context, term object.Term, value string,
) (resultset.ResultSet, error) {
	if !term.IsValid() {
		return resultset.ResultSet{}, fmt.Errorf("%w: %w: %q", domain.ErrFetchFailed, domain.ErrInvalidTerm, term)
	}
	params := url.Values{}
	params.Set(string(term), value)
	return c.fetchObjects(ctx, "object", c.endpoint("object", params))
}

// FetchPage follows a paging link returned in a result set's info envelope.
// Links that leave the catalog host are refused.
func (c *Client) FetchPage(ctx context.Context, link string) (resultset.ResultSet, error) {
	u, err := url.Parse(link)
	if err != nil {
		return resultset.ResultSet{}, fmt.Errorf("%w: parse page link: %w", domain.ErrFetchFailed, err)
	}
	if u.Scheme != c.baseURL.Scheme || u.Host != c.baseURL.Host {
		return resultset.ResultSet{}, fmt.Errorf("%w: page link %q is not on the catalog host", domain.ErrFetchFailed, u.Host)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()
	return c.fetchObjects(ctx, "page", u)
}

// HealthCheck verifies the catalog answers with a one-record classification page.
func (c *Client) HealthCheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("size", "1")
	var page optionPageDTO
	if err := c.get(ctx, "health", c.endpoint("classification", params), &page); err != nil {
		return fmt.Errorf("catalog health: %w", err)
	}
	return nil
}

func (c *Client) fetchOptions(ctx context.Context, kind option.Kind, sort string) (option.List, error) {
	params := url.Values{}
	params.Set("size", strconv.Itoa(c.optionPageSize))
	params.Set("sort", sort)

	var page optionPageDTO
	if err := c.get(ctx, string(kind), c.endpoint(string(kind), params), &page); err != nil {
		return nil, err
	}
	return optionsFromDTO(page.Records), nil
}

func (c *Client) fetchObjects(ctx context.Context, endpoint string, u *url.URL) (resultset.ResultSet, error) {
	var page objectPageDTO
	if err := c.get(ctx, endpoint, u, &page); err != nil {
		return resultset.ResultSet{}, err
	}
	return resultSetFromDTO(&page), nil
}

func (c *Client) endpoint(resource string, params url.Values) *url.URL {
	u := *c.baseURL
	u.Path = u.Path + "/" + resource
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()
	return &u
}

// get performs the request and decodes JSON into out, recording transport metrics.
// Every failure wraps domain.ErrFetchFailed.
func (c *Client) get(ctx context.Context, endpoint string, u *url.URL, out any) error {
	if c.quota != nil {
		if err := c.quota.Acquire(ctx); err != nil {
			metrics.CatalogErrorsTotal.WithLabelValues(endpoint, "quota").Inc()
			return fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.recordError(endpoint, "network")
		return fmt.Errorf("%w: %s request: %w", domain.ErrFetchFailed, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.recordError(endpoint, "status_"+strconv.Itoa(resp.StatusCode))
		return domain.NewStatusError(endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		c.recordError(endpoint, "decode")
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s response truncated: %w", domain.ErrFetchFailed, endpoint, err)
		}
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrFetchFailed, endpoint, err)
	}

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	c.logger.Debug("catalog request",
		zap.String("endpoint", endpoint),
		zap.Duration("latency", time.Since(start)),
	)
	return nil
}

func (c *Client) recordError(endpoint, errorType string) {
	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
	metrics.CatalogErrorsTotal.WithLabelValues(endpoint, errorType).Inc()
}
