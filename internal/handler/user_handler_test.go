package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventify-hub/internal/auth"
	"inventify-hub/internal/middleware"
	"inventify-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIdentityService is a mock implementation of service.IdentityService.
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityService) GetRole(ctx context.Context, email string) (model.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *MockIdentityService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockIdentityService) PromoteToManager(ctx context.Context, tx pgx.Tx, ownerEmail, shopName string) error {
	args := m.Called(ctx, tx, ownerEmail, shopName)
	return args.Error(0)
}

func (m *MockIdentityService) CreateJoinRequest(ctx context.Context, candidateEmail, shopID, joinPost string) (*model.JoinRequest, error) {
	args := m.Called(ctx, candidateEmail, shopID, joinPost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JoinRequest), args.Error(1)
}

func (m *MockIdentityService) ListJoinRequests(ctx context.Context, shopID string) ([]model.JoinRequest, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinRequest), args.Error(1)
}

func (m *MockIdentityService) ApproveJoinRequest(ctx context.Context, requestID uuid.UUID) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// serveAs wraps a handler in bearer auth and performs the request with a
// token issued for the given email. An empty email sends no token.
func serveAs(t *testing.T, h http.HandlerFunc, verifier *auth.Verifier, email, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if email != "" {
		token, err := verifier.Issue(email)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	middleware.BearerAuth(verifier, zerolog.Nop())(h).ServeHTTP(w, req)
	return w
}

func newTestVerifier() *auth.Verifier {
	return auth.NewVerifier("test-secret", time.Hour)
}

func TestUserHandler_Register(t *testing.T) {
	logger := zerolog.Nop()
	verifier := newTestVerifier()

	tests := []struct {
		name           string
		body           string
		inserted       bool
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "New user created",
			body:           `{"email":"alice@example.com","name":"Alice","role":"user"}`,
			inserted:       true,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Repeat sign-in acknowledged",
			body:           `{"email":"alice@example.com","name":"Alice"}`,
			inserted:       false,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Missing email",
			body:           `{"name":"Nameless"}`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Invalid body",
			body:           `{notjson`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdentity := new(MockIdentityService)
			guard := NewRoleGuard(mockIdentity, logger)
			h := NewUserHandler(mockIdentity, verifier, guard, logger)

			if tt.expectService {
				mockIdentity.On("Register", mock.Anything, mock.AnythingOfType("*model.User")).Return(tt.inserted, nil)
			}

			w := serveAs(t, h.Register, verifier, "", http.MethodPost, "/users", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if !tt.expectService {
				mockIdentity.AssertNotCalled(t, "Register")
			}
		})
	}
}

func TestUserHandler_List_AdminOnly(t *testing.T) {
	logger := zerolog.Nop()
	verifier := newTestVerifier()

	tests := []struct {
		name           string
		email          string
		role           model.Role
		expectedStatus int
	}{
		{"admin allowed", "admin@example.com", model.RoleAdmin, http.StatusOK},
		{"manager forbidden", "manager@example.com", model.RoleManager, http.StatusForbidden},
		{"plain user forbidden", "user@example.com", model.RoleUser, http.StatusForbidden},
		{"anonymous unauthorised", "", model.RoleNone, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdentity := new(MockIdentityService)
			guard := NewRoleGuard(mockIdentity, logger)
			h := NewUserHandler(mockIdentity, verifier, guard, logger)

			if tt.email != "" {
				mockIdentity.On("GetRole", mock.Anything, tt.email).Return(tt.role, nil)
			}
			if tt.expectedStatus == http.StatusOK {
				mockIdentity.On("ListUsers", mock.Anything).Return([]model.User{
					{Email: "alice@example.com", Role: model.RoleUser},
				}, nil)
			}

			w := serveAs(t, h.List, verifier, tt.email, http.MethodGet, "/users", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestUserHandler_GetRole_OwnRoleOnly(t *testing.T) {
	logger := zerolog.Nop()
	verifier := newTestVerifier()

	mockIdentity := new(MockIdentityService)
	guard := NewRoleGuard(mockIdentity, logger)
	h := NewUserHandler(mockIdentity, verifier, guard, logger)

	mockIdentity.On("GetRole", mock.Anything, "alice@example.com").Return(model.RoleManager, nil)

	w := serveAs(t, h.GetRole, verifier, "alice@example.com", http.MethodGet, "/users/role/alice@example.com", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storeManager")

	// Querying someone else's role is refused.
	w = serveAs(t, h.GetRole, verifier, "alice@example.com", http.MethodGet, "/users/role/bob@example.com", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_IssueToken(t *testing.T) {
	logger := zerolog.Nop()
	verifier := newTestVerifier()

	mockIdentity := new(MockIdentityService)
	guard := NewRoleGuard(mockIdentity, logger)
	h := NewUserHandler(mockIdentity, verifier, guard, logger)

	w := serveAs(t, h.IssueToken, verifier, "", http.MethodPost, "/jwt", `{"email":"alice@example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}
