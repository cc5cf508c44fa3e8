package chi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	searchuc "github.com/kailas-cloud/artcollector/internal/usecase/search"
	"github.com/kailas-cloud/artcollector/internal/view"
)

// Index handles GET /: the search page for the caller's session.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.search.LoadOptions(r.Context(), sess)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!DOCTYPE html>\n" + view.Render(view.Page{
		Title:    s.opts.Title,
		Snapshot: sess.Snapshot(),
	})))
}

// SubmitSearch handles POST /search from the facet form.
// Fetch failures are not shown: the page keeps its previous results.
func (s *Server) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	f := facet.New(
		r.PostForm.Get(string(facet.Query)),
		r.PostForm.Get(string(facet.Century)),
		r.PostForm.Get(string(facet.Classification)),
	)

	sess := s.session(w, r)
	sess.SetFacets(f)
	s.search.Submit(r.Context(), sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SearchByTerm handles POST /search/term from a searchable fact.
func (s *Server) SearchByTerm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	out := s.search.Lookup(r.Context(), sess, object.Term(r.PostForm.Get("term")), r.PostForm.Get("value"))
	if errors.Is(out.Err(), domain.ErrInvalidTerm) {
		http.Error(w, out.Err().Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SelectFeature handles GET /feature/{index}.
func (s *Server) SelectFeature(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	if _, err := sess.Select(index); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// TurnPage handles GET /page?dir=next|prev.
func (s *Server) TurnPage(w http.ResponseWriter, r *http.Request) {
	dir, err := bindDirection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	s.search.Page(r.Context(), sess, dir)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func bindDirection(r *http.Request) (searchuc.Direction, error) {
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "dir", r.URL.Query(), &raw); err != nil {
		return "", err
	}
	dir := searchuc.Direction(raw)
	if !dir.IsValid() {
		return "", errors.New("dir must be next or prev")
	}
	return dir, nil
}
