package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
	token  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.Claims, error) {
	s.token = token
	return s.claims, s.err
}

func runAuth(t *testing.T, header string, auth *stubAuthenticator, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Auth(auth)(next)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth := &stubAuthenticator{claims: &domain.Claims{UserID: "u1", Username: "alice", Role: domain.RoleAdmin}}

	called := false
	rec, err := runAuth(t, "Bearer good-token", auth, func(c echo.Context) error {
		called = true
		if c.Get(UsernameKey) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(RoleKey) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		claims, ok := domain.ClaimsFromContext(c.Request().Context())
		if !ok || claims.UserID != "u1" {
			t.Fatalf("claims not attached to request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if auth.token != "good-token" {
		t.Fatalf("authenticator got %q", auth.token)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"missing header", "", nil},
		{"wrong scheme", "Token abc", nil},
		{"empty token", "Bearer ", nil},
		{"invalid token", "Bearer not-a-token", domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuthenticator{err: tt.err}
			rec, _ := runAuth(t, tt.header, auth, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_StoreFailurePassesThrough(t *testing.T) {
	storeErr := domain.NewStoreError("is revoked", errors.New("redis down"))
	auth := &stubAuthenticator{err: storeErr}

	rec, err := runAuth(t, "Bearer tok", auth, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
