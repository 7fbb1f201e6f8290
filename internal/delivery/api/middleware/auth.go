package middleware

import (
	"log/slog"
	"strings"

	"quill/internal/delivery/api/response"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/policy"
	"quill/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware turns a bearer token into a session claim on the echo context.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
		}

		claim, err := m.tokenSvc.Validate(strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Access token rejected", slog.Any("error", err))

			return response.HandleAppError(c, err)
		}

		deliverycontext.SetClaim(c, *claim)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the claim's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, ok := deliverycontext.GetClaim(c)
			if !ok {
				return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
			}

			if err := policy.RequireRole(claim, required); err != nil {
				return response.HandleAppError(c, err)
			}

			return next(c)
		}
	}
}

// GetClaim returns the claim set by Authenticate.
func GetClaim(c echo.Context) (entity.SessionClaim, bool) {
	return deliverycontext.GetClaim(c)
}
