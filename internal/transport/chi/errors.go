package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/domain"
	logpkg "github.com/kailas-cloud/artcollector/internal/logger"
)

// ErrorCode is the machine-readable code in an ErrorResponse.
type ErrorCode string

// Error codes returned by the JSON API.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeNotFound         ErrorCode = "not_found"
	CodeSuperseded       ErrorCode = "superseded"
	CodeQuotaExceeded    ErrorCode = "quota_exceeded"
	CodeFetchFailed      ErrorCode = "fetch_failed"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrInvalidFacet, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidTerm, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrStale, http.StatusConflict, CodeSuperseded),
		// Quota is checked before the fetch, so it must match ahead of ErrFetchFailed.
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusTooManyRequests, CodeQuotaExceeded),
		sentinelHandler(domain.ErrFetchFailed, http.StatusBadGateway, CodeFetchFailed),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidFacet,
		domain.ErrInvalidTerm,
		domain.ErrNotFound,
		domain.ErrStale,
		domain.ErrQuotaExceeded,
		domain.ErrFetchFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
