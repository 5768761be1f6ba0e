// Package auth provides the JWT authentication middleware and the request
// authorization tiers built on top of it.
package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/security"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

const userContextKey = "auth.user"

// Middleware authenticates requests and loads the live user record.
type Middleware struct {
	tokens *security.TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(tokens *security.TokenManager, users repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Authenticate verifies the bearer token and refetches the user from the
// database on every request, so deactivating an account takes effect
// immediately regardless of outstanding tokens.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperrors.Unauthenticatedf("Not authenticated")
			}
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				return apperrors.Unauthenticatedf("Not authenticated")
			}

			claims, err := m.tokens.Parse(tokenStr)
			if err != nil {
				m.logger.Debug("token rejected", zap.Error(err))
				return apperrors.Unauthenticatedf("Could not validate credentials")
			}

			user, err := m.users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return apperrors.Wrap(err, "load authenticated user")
			}
			if user == nil {
				return apperrors.Unauthenticatedf("Could not validate credentials")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireActive rejects deactivated accounts. It must run after Authenticate.
func (m *Middleware) RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.Unauthenticatedf("Not authenticated")
			}
			if !user.IsActive {
				return apperrors.Unauthorizedf("Inactive user")
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin accounts. It must run after Authenticate.
func (m *Middleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.Unauthenticatedf("Not authenticated")
			}
			if !user.IsActive {
				return apperrors.Unauthorizedf("Inactive user")
			}
			if !user.IsAdmin {
				return apperrors.Unauthorizedf("Not enough permissions")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by Authenticate, or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userContextKey).(*entity.User)
	return user
}
