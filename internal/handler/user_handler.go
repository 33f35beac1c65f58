package handler

import (
	"encoding/json"
	"net/http"

	"inventify-hub/internal/auth"
	"inventify-hub/internal/model"
	"inventify-hub/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles user and authentication HTTP requests.
type UserHandler struct {
	identity service.IdentityService
	verifier *auth.Verifier
	guard    *RoleGuard
	logger   zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(identity service.IdentityService, verifier *auth.Verifier, guard *RoleGuard, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		identity: identity,
		verifier: verifier,
		guard:    guard,
		logger:   logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /users requests. Registration is idempotent by
// email: a repeat sign-in for a known user is acknowledged without
// overwriting the stored record.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if user.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}

	inserted, err := h.identity.Register(r.Context(), &user)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if !inserted {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// List handles GET /users requests. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if _, ok := h.guard.Require(w, r, model.RoleAdmin); !ok {
		return
	}

	users, err := h.identity.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetRole handles GET /users/role/{email} requests. The caller may only
// query their own role.
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	callerEmail, ok := h.guard.Identify(w, r)
	if !ok {
		return
	}

	// Expecting path: /users/role/{email}
	path := r.URL.Path
	if len(path) < len("/users/role/") {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}
	email := path[len("/users/role/"):]

	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}
	if email != callerEmail {
		writeError(w, http.StatusForbidden, model.ErrForbidden.Message, h.logger)
		return
	}

	role, err := h.identity.GetRole(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"role": string(role)})
}

// IssueToken handles POST /jwt requests. Exchanges a signed-in email for a
// bearer token.
func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required", h.logger)
		return
	}

	token, err := h.verifier.Issue(req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
