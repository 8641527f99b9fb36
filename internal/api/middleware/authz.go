package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pagehub/pages-api/internal/api/metrics"
	"github.com/pagehub/pages-api/internal/auth/authz"
)

// Require enforces an authorization requirement on a route. The requirement
// attached here is the most specific scope: an anonymous-allow requirement
// wins over anything an enclosing group demanded. Denials are uniform.
func Require(gate *authz.Gate, req authz.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if req.Anonymous() {
				return next(c)
			}

			var claims authz.ClaimSet
			if cs := ClaimsFrom(c); cs != nil {
				claims = cs
			}

			if !gate.Authorize(claims, req) {
				metrics.AuthzDenialsTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
