package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

// UserContextKey is the Echo context key the authenticated user is stored
// under.
const UserContextKey = "user"

// Auth resolves the bearer token to a user record and injects it into the
// request context. The user document is re-read on every request so role
// changes take effect immediately; nothing is cached.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, user not found")
			}

			// Strip the hash before exposing the record to handlers.
			attached := *user
			attached.PasswordHash = ""
			c.Set(UserContextKey, &attached)

			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Auth, or nil when the route is
// unprotected.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}
