package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/state"
	"github.com/kailas-cloud/artcollector/internal/usecase/workflow"
)

// FacetsBody is the facet triple on the wire.
type FacetsBody struct {
	QueryString    string `json:"queryString"`
	Century        string `json:"century"`
	Classification string `json:"classification"`
}

// FacetsPatch changes only the facets that are present.
type FacetsPatch struct {
	QueryString    *string `json:"queryString,omitempty"`
	Century        *string `json:"century,omitempty"`
	Classification *string `json:"classification,omitempty"`
}

// TermBody is a searchable fact activation.
type TermBody struct {
	Term  string `json:"term"`
	Value string `json:"value"`
}

// OptionsResponse holds both selector lists.
type OptionsResponse struct {
	Centuries       option.List `json:"centuries"`
	Classifications option.List `json:"classifications"`
}

// StateResponse mirrors what the search page shows.
type StateResponse struct {
	Facets          FacetsBody           `json:"facets"`
	Centuries       int                  `json:"centuries"`
	Classifications int                  `json:"classifications"`
	Loading         bool                 `json:"loading"`
	Results         *resultset.ResultSet `json:"results,omitempty"`
	Featured        *object.Object       `json:"featured,omitempty"`
}

func facetsToBody(f facet.Facets) FacetsBody {
	return FacetsBody{QueryString: f.QueryString(), Century: f.Century(), Classification: f.Classification()}
}

func stateToResponse(snap state.Snapshot) StateResponse {
	return StateResponse{
		Facets:          facetsToBody(snap.Facets),
		Centuries:       len(snap.Centuries),
		Classifications: len(snap.Classifications),
		Loading:         snap.Loading,
		Results:         snap.Results,
		Featured:        snap.Featured,
	}
}

// GetOptions handles GET /api/v1/options.
func (s *Server) GetOptions(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.search.LoadOptions(r.Context(), sess)

	snap := sess.Snapshot()
	writeJSON(w, http.StatusOK, OptionsResponse{
		Centuries:       snap.Centuries,
		Classifications: snap.Classifications,
	})
}

// GetState handles GET /api/v1/state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateToResponse(s.session(w, r).Snapshot()))
}

// UpdateFacets handles PUT /api/v1/facets. No query is issued.
func (s *Server) UpdateFacets(w http.ResponseWriter, r *http.Request) {
	var req FacetsPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess := s.session(w, r)
	updates := []struct {
		name  facet.Name
		value *string
	}{
		{facet.Query, req.QueryString},
		{facet.Century, req.Century},
		{facet.Classification, req.Classification},
	}
	for _, u := range updates {
		if u.value == nil {
			continue
		}
		if _, err := sess.SetFacet(u.name, *u.value); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, facetsToBody(sess.Facets()))
}

// RunSearch handles POST /api/v1/search. An optional body replaces the facets first.
func (s *Server) RunSearch(w http.ResponseWriter, r *http.Request) {
	var req FacetsBody
	err := json.NewDecoder(r.Body).Decode(&req)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess := s.session(w, r)
	if err == nil {
		sess.SetFacets(facet.New(req.QueryString, req.Century, req.Classification))
	}

	s.writeOutcome(w, r, s.search.Submit(r.Context(), sess))
}

// RunTermSearch handles POST /api/v1/search/term.
func (s *Server) RunTermSearch(w http.ResponseWriter, r *http.Request) {
	var req TermBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess := s.session(w, r)
	s.writeOutcome(w, r, s.search.Lookup(r.Context(), sess, object.Term(req.Term), req.Value))
}

// RunPage handles POST /api/v1/page?dir=next|prev.
func (s *Server) RunPage(w http.ResponseWriter, r *http.Request) {
	dir, err := bindDirection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	sess := s.session(w, r)
	s.writeOutcome(w, r, s.search.Page(r.Context(), sess, dir))
}

// PutFeatured handles PUT /api/v1/featured/{index}.
func (s *Server) PutFeatured(w http.ResponseWriter, r *http.Request) {
	var index int
	if err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true},
	); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid index: "+strconv.Quote(chi.URLParam(r, "index")))
		return
	}

	o, err := s.session(w, r).Select(index)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// GetUsage handles GET /api/v1/usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	report, err := s.usage.GetReport(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, out workflow.Outcome) {
	switch {
	case out.Err() != nil:
		s.handleDomainError(w, r, out.Err())
	case out.Stale():
		s.handleDomainError(w, r, domain.ErrStale)
	default:
		rs, _ := out.Results()
		writeJSON(w, http.StatusOK, rs)
	}
}
