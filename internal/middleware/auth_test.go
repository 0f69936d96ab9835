package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
)

type stubTokens struct{}

func (stubTokens) Validate(token string) (string, error) {
	if token == "valid" {
		return "alice", nil
	}
	return "", errors.New("invalid")
}

type stubUsers struct{ user *model.User }

func (s stubUsers) UserByUsername(context.Context, string) (*model.User, error) {
	if s.user == nil {
		return nil, apperror.NotFound("user")
	}
	return s.user, nil
}

func serve(t *testing.T, user *model.User, header string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	guard := tenancy.NewGuard(stubTokens{}, stubUsers{user: user})
	chain := append([]echo.MiddlewareFunc{RequireAuth(guard)}, mw...)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).Username)
	}, chain...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Role: model.RoleMember, IsActive: true}

	tests := []struct {
		name   string
		user   *model.User
		header string
		status int
	}{
		{name: "bearer", user: alice, header: "Bearer valid", status: http.StatusOK},
		{name: "scheme is case-insensitive", user: alice, header: "bearer valid", status: http.StatusOK},
		{name: "missing header", user: alice, status: http.StatusUnauthorized},
		{name: "wrong scheme", user: alice, header: "Basic valid", status: http.StatusUnauthorized},
		{name: "invalid token", user: alice, header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "unknown user", header: "Bearer valid", status: http.StatusUnauthorized},
		{name: "inactive user", user: &model.User{Username: "alice"}, header: "Bearer valid", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.user, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	member := &model.User{Username: "alice", Role: model.RoleMember, IsActive: true}
	admin := &model.User{Username: "alice", Role: model.RoleAdmin, IsActive: true}

	assert.Equal(t, http.StatusForbidden, serve(t, member, "Bearer valid", RequireAdmin()).Code)
	assert.Equal(t, http.StatusOK, serve(t, admin, "Bearer valid", RequireAdmin()).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequestIDMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}
