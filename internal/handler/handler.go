package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"inventify-hub/internal/auth"
	"inventify-hub/internal/middleware"
	"inventify-hub/internal/model"
	"inventify-hub/internal/service"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service failure onto an HTTP status. Tagged
// domain errors carry their own message; anything else is a 500 with a
// generic body.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	case model.ErrCodeConflict, model.ErrCodeQuotaExceeded, model.ErrCodeStockExhausted:
		status = http.StatusConflict
	case model.ErrCodeEmptyBill, model.ErrCodeInvalidJSON:
		status = http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	}

	writeError(w, status, domainErr.Message, logger)
}

// RoleGuard authorises requests against explicit permitted-role sets. The
// caller's role is re-read from storage on every check, so a demotion takes
// effect on the next request even while an old token is still valid.
type RoleGuard struct {
	identity service.IdentityService
	logger   zerolog.Logger
}

// NewRoleGuard creates a new role guard.
func NewRoleGuard(identity service.IdentityService, logger zerolog.Logger) *RoleGuard {
	return &RoleGuard{
		identity: identity,
		logger:   logger.With().Str("component", "role-guard").Logger(),
	}
}

// Require rejects the request unless the authenticated caller holds one of
// the permitted roles. It returns the caller's email and whether the request
// may proceed; on rejection the response has already been written.
func (g *RoleGuard) Require(w http.ResponseWriter, r *http.Request, permitted ...model.Role) (string, bool) {
	email := middleware.EmailFromContext(r.Context())
	if email == "" {
		writeError(w, http.StatusUnauthorized, "unauthorised: missing token", g.logger)
		return "", false
	}

	role, err := g.identity.GetRole(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve caller role", g.logger)
		return "", false
	}

	if auth.Allowed(role, permitted...) {
		return email, true
	}

	g.logger.Warn().
		Str("email", email).
		Str("role", string(role)).
		Str("path", r.URL.Path).
		Msg("forbidden access")
	writeError(w, http.StatusForbidden, model.ErrForbidden.Message, g.logger)
	return "", false
}

// Identify returns the authenticated caller's email without any role
// check. Used by endpoints every signed-in user may call.
func (g *RoleGuard) Identify(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := middleware.EmailFromContext(r.Context())
	if email == "" {
		writeError(w, http.StatusUnauthorized, "unauthorised: missing token", g.logger)
		return "", false
	}
	return email, true
}
