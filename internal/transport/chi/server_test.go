package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/artcollector/internal/db/memory"
	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/metrics"
	"github.com/kailas-cloud/artcollector/internal/repository/quota"
	"github.com/kailas-cloud/artcollector/internal/state"
	healthuc "github.com/kailas-cloud/artcollector/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artcollector/internal/usecase/search"
	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

func init() {
	metrics.RegisterCatalogMetrics()
}

// --- Fakes ---

type fakeCatalog struct {
	mu        sync.Mutex
	result    resultset.ResultSet
	err       error
	lastFacet facet.Facets
	lastTerm  object.Term
}

func (f *fakeCatalog) FetchAllCenturies(context.Context) (option.List, error) {
	return option.List{{ID: 1, Name: "17th century"}, {ID: 2, Name: "18th century"}}, nil
}

func (f *fakeCatalog) FetchAllClassifications(context.Context) (option.List, error) {
	return option.List{{ID: 26, Name: "Paintings"}}, nil
}

func (f *fakeCatalog) FetchQueryResults(_ context.Context, fc facet.Facets) (resultset.ResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFacet = fc
	return f.result, f.err
}

func (f *fakeCatalog) FetchQueryResultsFromTermAndValue(
	_ context.Context, term object.Term, _ string,
) (resultset.ResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTerm = term
	return f.result, f.err
}

func (f *fakeCatalog) FetchPage(context.Context, string) (resultset.ResultSet, error) {
	return f.result, f.err
}

func sampleResults() resultset.ResultSet {
	return resultset.ResultSet{
		Info: resultset.Info{TotalRecords: 2, Pages: 1, Page: 1},
		Records: []object.Object{
			{ID: 1, Title: "Portrait", Culture: "Dutch", Images: []object.Image{}},
			{ID: 2, Title: "Landscape", Images: []object.Image{}},
		},
	}
}

type testEnv struct {
	handler  http.Handler
	catalog  *fakeCatalog
	sessions *state.Registry
	logs     *observer.ObservedLogs
}

func newTestEnv(t *testing.T, apiKeys ...string) *testEnv {
	t.Helper()

	cat := &fakeCatalog{result: sampleResults()}
	store := memory.NewStore()
	sessions := state.NewRegistry(time.Hour)
	core, logs := observer.New(zap.DebugLevel)

	srv := NewServer(
		searchuc.New(cat, cat, zap.NewNop()),
		usageuc.New(quota.New(store), 100, true, zap.NewNop()),
		healthuc.New(store, nil),
		sessions,
		Options{Title: "Test Collector", APIKeys: apiKeys},
		zap.New(core),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	return &testEnv{handler: r, catalog: cat, sessions: sessions, logs: logs}
}

func (e *testEnv) do(t *testing.T, req *http.Request, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	var st StateResponse
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

// --- HTML ---

func TestIndex_NewSession(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/", http.NoBody), "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Errorf("expected a session cookie")
	}
	body := rr.Body.String()
	for _, want := range []string{"Test Collector", "(2)", "(1)", `id="search"`, `id="feature"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if env.sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", env.sessions.Len())
	}
}

func TestSession_CreationLogsRegistrySize(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(t, httptest.NewRequest(http.MethodGet, "/", http.NoBody), "")
	env.do(t, httptest.NewRequest(http.MethodGet, "/", http.NoBody), "")
	env.do(t, httptest.NewRequest(http.MethodGet, "/", http.NoBody), first.Header().Get(SessionHeader))

	entries := env.logs.FilterMessage("session created").All()
	if len(entries) != 2 {
		t.Fatalf("session created entries = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if got := e.ContextMap()["sessions"]; got != int64(i+1) {
			t.Errorf("entry %d sessions = %v, want %d", i, got, i+1)
		}
	}
}

func TestSubmitSearch_RedirectsAndPublishes(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, formRequest("/search", url.Values{"classification": {"Paintings"}}), "")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	sid := rr.Header().Get(SessionHeader)

	f := env.catalog.lastFacet
	if f.QueryString() != "" || f.Century() != facet.Any || f.Classification() != "Paintings" {
		t.Errorf("facets = %q/%q/%q", f.QueryString(), f.Century(), f.Classification())
	}

	st := decodeState(t, env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", http.NoBody), sid))
	if st.Results == nil || len(st.Results.Records) != 2 {
		t.Fatalf("results = %+v", st.Results)
	}
	if st.Loading {
		t.Error("loading should be cleared")
	}
}

func TestSubmitSearch_FailureIsSilent(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.err = domain.NewStatusError("object", 500)

	rr := env.do(t, formRequest("/search", url.Values{"queryString": {"vase"}}), "")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}

	st := decodeState(t, env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", http.NoBody),
		rr.Header().Get(SessionHeader)))
	if st.Results != nil {
		t.Errorf("failed fetch must not publish: %+v", st.Results)
	}
	if st.Facets.QueryString != "vase" {
		t.Errorf("facets not kept: %+v", st.Facets)
	}
}

func TestSearchByTerm(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, formRequest("/search/term", url.Values{"term": {"culture"}, "value": {"Dutch"}}), "")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	if env.catalog.lastTerm != object.TermCulture {
		t.Errorf("term = %q", env.catalog.lastTerm)
	}

	rr = env.do(t, formRequest("/search/term", url.Values{"term": {"color"}, "value": {"red"}}), "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown term: status = %d, want 400", rr.Code)
	}
}

func TestSelectFeature(t *testing.T) {
	env := newTestEnv(t)
	sid := env.do(t, formRequest("/search", url.Values{}), "").Header().Get(SessionHeader)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/feature/1", http.NoBody), sid)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	st := decodeState(t, env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", http.NoBody), sid))
	if st.Featured == nil || st.Featured.Title != "Landscape" {
		t.Errorf("featured = %+v", st.Featured)
	}

	tests := map[string]int{
		"/feature/9":   http.StatusNotFound,
		"/feature/abc": http.StatusBadRequest,
	}
	for path, want := range tests {
		if rr := env.do(t, httptest.NewRequest(http.MethodGet, path, http.NoBody), sid); rr.Code != want {
			t.Errorf("%s: status = %d, want %d", path, rr.Code, want)
		}
	}
}

func TestTurnPage_BadDirection(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/page", "/page?dir=sideways"} {
		if rr := env.do(t, httptest.NewRequest(http.MethodGet, path, http.NoBody), ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rr.Code)
		}
	}
}

// --- JSON API ---

func TestUpdateFacets_OnlyTouchesGivenField(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(http.MethodPut, "/api/v1/facets", `{"classification":"Paintings"}`), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var got FacetsBody
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := FacetsBody{QueryString: "", Century: "any", Classification: "Paintings"}
	if got != want {
		t.Errorf("facets = %+v, want %+v", got, want)
	}
}

func TestRunSearch(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(http.MethodPost, "/api/v1/search",
		`{"queryString":"","century":"any","classification":"Paintings"}`), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var rs resultset.ResultSet
	if err := json.NewDecoder(rr.Body).Decode(&rs); err != nil {
		t.Fatal(err)
	}
	if len(rs.Records) != 2 {
		t.Errorf("records = %d, want 2", len(rs.Records))
	}
}

func TestRunSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody ErrorCode
	}{
		{"catalog failure", domain.NewStatusError("object", 503), http.StatusBadGateway, CodeFetchFailed},
		{"quota", domain.ErrQuotaExceeded, http.StatusTooManyRequests, CodeQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.catalog.err = tt.err

			rr := env.do(t, jsonRequest(http.MethodPost, "/api/v1/search", ""), "")
			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatal(err)
			}
			if errResp.Code != tt.wantBody {
				t.Errorf("code = %s, want %s", errResp.Code, tt.wantBody)
			}
		})
	}
}

func TestRunTermSearch_InvalidTerm(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(http.MethodPost, "/api/v1/search/term", `{"term":"color","value":"red"}`), "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestRunPage_NoLink(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, jsonRequest(http.MethodPost, "/api/v1/page?dir=next", ""), "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestGetOptions(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/options", http.NoBody), "")
	var resp OptionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Centuries) != 2 || len(resp.Classifications) != 1 {
		t.Errorf("options = %+v", resp)
	}
}

func TestGetUsage(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/usage", http.NoBody), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var report usageuc.Report
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Limit != 100 || report.Remaining != 100 {
		t.Errorf("report = %+v", report)
	}
}

func TestAPI_RequiresKeyWhenConfigured(t *testing.T) {
	env := newTestEnv(t, "secret")

	if rr := env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", http.NoBody), ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("api without key: status = %d, want 401", rr.Code)
	}
	if rr := env.do(t, httptest.NewRequest(http.MethodGet, "/", http.NoBody), ""); rr.Code != http.StatusOK {
		t.Errorf("page must stay public: status = %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/health", http.NoBody), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var report healthuc.Report
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Checks["cache"] != healthuc.CheckOK || report.Checks["catalog"] != healthuc.CheckSkipped {
		t.Errorf("checks = %+v", report.Checks)
	}
}
