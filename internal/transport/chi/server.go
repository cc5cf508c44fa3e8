package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/state"
	healthuc "github.com/kailas-cloud/artcollector/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artcollector/internal/usecase/search"
	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

// SessionHeader carries the session id for JSON clients that do not keep cookies.
const SessionHeader = "X-Session-ID"

// Options tunes the HTTP surface.
type Options struct {
	Title        string
	CookieName   string
	CookieSecure bool
	CookieMaxAge time.Duration
	APIKeys      []string
}

// Server serves the search page and the JSON API.
type Server struct {
	search        *searchuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	sessions      *state.Registry
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(
	search *searchuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	sessions *state.Registry,
	opts Options,
	logger *zap.Logger,
) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "artcollector_session"
	}
	return &Server{
		search:        search,
		usage:         usage,
		health:        health,
		sessions:      sessions,
		opts:          opts,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes registers every route on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Post("/search", s.SubmitSearch)
	r.Post("/search/term", s.SearchByTerm)
	r.Get("/feature/{index}", s.SelectFeature)
	r.Get("/page", s.TurnPage)

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(s.opts.APIKeys))
		r.Get("/options", s.GetOptions)
		r.Get("/state", s.GetState)
		r.Put("/facets", s.UpdateFacets)
		r.Post("/search", s.RunSearch)
		r.Post("/search/term", s.RunTermSearch)
		r.Post("/page", s.RunPage)
		r.Put("/featured/{index}", s.PutFeatured)
		r.Get("/usage", s.GetUsage)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// session resolves the caller's session, creating one and setting the cookie when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *state.Session {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		if c, err := r.Cookie(s.opts.CookieName); err == nil {
			id = c.Value
		}
	}

	sess, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     s.opts.CookieName,
			Value:    sess.ID(),
			Path:     "/",
			MaxAge:   int(s.opts.CookieMaxAge / time.Second),
			HttpOnly: true,
			Secure:   s.opts.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		s.logger.Debug("session created",
			zap.String("session_id", sess.ID()),
			zap.Int("sessions", s.sessions.Len()),
		)
	}
	w.Header().Set(SessionHeader, sess.ID())
	return sess
}
