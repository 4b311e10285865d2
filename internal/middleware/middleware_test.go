package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/cems/internal/app/auth"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/services"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuth resolves fixed tokens to users
type stubAuth struct {
	services.AuthService
	users map[string]*models.User
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, services.ErrTokenFailed
}

func newStubAuth() *stubAuth {
	return &stubAuth{users: map[string]*models.User{
		"student-token": {ID: 1, Name: "Stu", RoleType: models.RoleStudent},
		"admin-token":   {ID: 2, Name: "Ada", RoleType: models.RoleAdmin},
	}}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"validation", apperrors.NewValidationError("title", "title is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "title is required"},
		{"duplicate registration", apperrors.ErrAlreadyRegistered, http.StatusBadRequest, dto.ErrorCodeConflict, "You are already registered for this event"},
		{"capacity", apperrors.ErrEventFull, http.StatusBadRequest, dto.ErrorCodeCapacityExceeded, "Event is full"},
		{"not found", apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Event not found"},
		{"forbidden", apperrors.NewForbiddenError("Only admins can delete events"), http.StatusForbidden, dto.ErrorCodeForbidden, "Only admins can delete events"},
		{"expired", services.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Not authorized, token expired"},
		{"wrapped", fmt.Errorf("loading: %w", apperrors.ErrUserNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decodeError(t, w)
			if resp.Success || resp.Error == nil {
				t.Fatalf("unexpected envelope: %s", w.Body.String())
			}
			if resp.Error.Code != tt.code || resp.Message != tt.message {
				t.Errorf("got %s %q, want %s %q", resp.Error.Code, resp.Message, tt.code, tt.message)
			}
		})
	}
}

func TestHandleAPIErrorField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	HandleAPIError(c, apperrors.NewValidationError("date", "date must be a valid date"))

	if resp := decodeError(t, w); resp.Error.Field != "date" {
		t.Errorf("field = %q", resp.Error.Field)
	}
}

func newGatedRouter() *gin.Engine {
	m := NewAuthMiddleware(newStubAuth())
	r := gin.New()
	ok := func(c *gin.Context) {
		id := CurrentUserID(c)
		if id == nil {
			c.String(http.StatusOK, "guest")
			return
		}
		c.String(http.StatusOK, fmt.Sprint(*id))
	}
	r.GET("/open", m.OptionalAuth(), ok)
	r.GET("/me", m.JWTAuth(), ok)
	r.DELETE("/events", m.JWTAuth(), m.RequireCapability(authz.ActionDeleteEvent), ok)
	return r
}

func TestAuthGates(t *testing.T) {
	r := newGatedRouter()

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
		body   string
	}{
		{"no token", http.MethodGet, "/me", "", http.StatusUnauthorized, ""},
		{"bad token", http.MethodGet, "/me", "Bearer nope", http.StatusUnauthorized, ""},
		{"bearer token", http.MethodGet, "/me", "Bearer student-token", http.StatusOK, "1"},
		{"optional guest", http.MethodGet, "/open", "", http.StatusOK, "guest"},
		{"optional bad token is guest", http.MethodGet, "/open", "Bearer nope", http.StatusOK, "guest"},
		{"optional user", http.MethodGet, "/open", "Bearer admin-token", http.StatusOK, "2"},
		{"student cannot delete", http.MethodDelete, "/events", "Bearer student-token", http.StatusForbidden, ""},
		{"admin can delete", http.MethodDelete, "/events", "Bearer admin-token", http.StatusOK, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestForbiddenMessage(t *testing.T) {
	r := newGatedRouter()
	req := httptest.NewRequest(http.MethodDelete, "/events", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if resp := decodeError(t, w); resp.Message != "Only admins can delete events" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestBareBearerHeaderHasNoToken(t *testing.T) {
	r := newGatedRouter()
	for _, header := range []string{"Bearer", "Bearer ", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%q: status = %d", header, w.Code)
		}
		if resp := decodeError(t, w); resp.Message != "Not authorized, no token" {
			t.Errorf("%q: message = %q", header, resp.Message)
		}
	}
}
