package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/pkg/logger"
	"github.com/suteetoe/kazi/prometheus"
	"go.uber.org/zap"
)

// Token exchanges form-encoded username/password for a bearer token.
func (h *Handler) Token(c echo.Context) error {
	log := logger.FromContext(c)

	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		prometheus.RecordAuthError("invalid_request")
		return fail(c, "token", "create", apperror.Invalid("username and password are required", nil))
	}

	user, err := h.store.VerifyCredentials(c.Request().Context(), username, password)
	if err != nil {
		switch apperror.CodeOf(err) {
		case apperror.EUnauthenticated:
			prometheus.RecordLogin("bad_credentials")
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		case apperror.EForbidden:
			prometheus.RecordLogin("inactive")
		}
		return fail(c, "token", "create", err)
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		return fail(c, "token", "create", apperror.Internal("token error", err))
	}

	prometheus.RecordLogin("success")
	log.Info("Token issued", zap.String("username", user.Username), zap.Uint("user_id", user.ID))

	return ok(c, "token", "create", http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the calling user.
func (h *Handler) Me(c echo.Context) error {
	return ok(c, "user", "get", http.StatusOK, middleware.CurrentUser(c))
}
