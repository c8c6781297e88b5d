package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blogora/blog-api/internal/core/token"
)

// ClaimsKey is the echo context key the verified claims are stored under.
const ClaimsKey = "claims"

// Auth verifies the bearer token and injects *authz.Claims into the context.
// Requests without a valid token are rejected with 401 before any handler
// runs; downstream authorization never sees an unverified identity.
func Auth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ClaimsKey, &claims)
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a valid token is present but lets
// anonymous requests through. Used on public routes whose policy is decided
// in the service layer.
func OptionalAuth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				if claims, err := issuer.Verify(parts[1]); err == nil {
					c.Set(ClaimsKey, &claims)
				}
			}
			return next(c)
		}
	}
}
