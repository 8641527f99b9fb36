package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pagehub/pages-api/internal/api/metrics"
	"github.com/pagehub/pages-api/internal/auth/token"
)

const claimsContextKey = "auth_claims"

// uniform message for every credential failure: callers must not learn
// whether the token was missing, malformed, forged, or expired.
const unauthorizedMessage = "invalid or missing credentials"

// Claims wraps the validated token claims and adapts them to the
// authorization gate's view.
type Claims struct {
	inner *token.Claims
}

func (c *Claims) Authenticated() bool { return c != nil && c.inner != nil }

func (c *Claims) Role() string {
	if !c.Authenticated() {
		return ""
	}
	return c.inner.Role
}

// Get returns a claim by name. Only claims actually issued into the
// credential are visible.
func (c *Claims) Get(name string) (string, bool) {
	if !c.Authenticated() {
		return "", false
	}
	switch name {
	case "sub":
		return c.inner.Subject, true
	case "jti":
		return c.inner.ID, true
	case "username":
		return c.inner.Username, true
	case "email":
		return c.inner.Email, true
	case "role":
		return c.inner.Role, true
	default:
		return "", false
	}
}

// ClaimsFrom extracts the claims injected by the Auth middleware, or nil if
// the request is unauthenticated.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// Auth validates the bearer token and injects claims into context. Requests
// without a token are rejected.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return authenticate(tokens, true)
}

// OptionalAuth validates the bearer token when one is presented but lets
// unauthenticated requests through, leaving the authorization decision to
// the gate. A presented-but-invalid token is still rejected.
func OptionalAuth(tokens *token.Service) echo.MiddlewareFunc {
	return authenticate(tokens, false)
}

func authenticate(tokens *token.Service, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
				}
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}

			c.Set(claimsContextKey, &Claims{inner: claims})
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// rejectionReason labels the metric only; it never reaches the response.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, token.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, token.ErrInvalidSignature):
		return "bad_signature"
	case errors.Is(err, token.ErrExpiredToken):
		return "expired"
	default:
		return "claims"
	}
}
