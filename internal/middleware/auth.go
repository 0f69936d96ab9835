package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/pkg/logger"
	"github.com/suteetoe/kazi/prometheus"
	"go.uber.org/zap"
)

const userKey = "user"

// CurrentUser returns the user RequireAuth stored on the context.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}

// RequireAuth validates the bearer token from the Authorization header and
// loads the calling user.
func RequireAuth(guard *tenancy.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return unauthorized(c, "not authenticated")
			}

			// Check if it's a Bearer token
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return unauthorized(c, "not authenticated")
			}

			user, err := guard.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				code := apperror.CodeOf(err)
				switch code {
				case apperror.EUnauthenticated:
					log.Warn("Invalid bearer token", zap.Error(err))
					prometheus.RecordAuthError("invalid_token")
					return unauthorized(c, apperror.MessageOf(err))
				case apperror.EForbidden:
					log.Warn("Inactive user presented a token", zap.Error(err))
					prometheus.RecordAuthError("inactive_user")
				default:
					log.Error("Failed to authenticate request", zap.Error(err))
				}
				return c.JSON(apperror.HTTPStatus(code), echo.Map{"error": apperror.MessageOf(err)})
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects callers that are not an Owner or Admin. It must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := tenancy.AuthorizeAdmin(CurrentUser(c)); err != nil {
				logger.FromContext(c).Warn("Admin route denied", zap.Error(err))
				prometheus.RecordAuthError("forbidden")
				code := apperror.CodeOf(err)
				return c.JSON(apperror.HTTPStatus(code), echo.Map{"error": apperror.MessageOf(err)})
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}
