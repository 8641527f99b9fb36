// Package token issues and validates the signed bearer credentials returned
// by the login endpoint. Tokens are compact JWS structures (header.payload.
// signature) signed with a symmetric key, so validation needs no state beyond
// the key itself.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pagehub/pages-api/internal/core/domain"
)

const defaultTTL = 30 * time.Minute

var ErrMalformedToken = errors.New("malformed token")
var ErrInvalidSignature = errors.New("invalid token signature")
var ErrExpiredToken = errors.New("token expired")
var ErrInvalidClaims = errors.New("token claims rejected")

// Config is the immutable signing configuration, loaded once at startup and
// passed in at construction time. Rotating Secret invalidates every token
// issued before the rotation; with the default 30 minute TTL the outage
// window is bounded and accepted.
type Config struct {
	// Secret is the HMAC-SHA256 signing key. Required; never logged.
	Secret string
	// Issuer and Audience are always embedded in issued tokens.
	Issuer   string
	Audience string
	// EnforceIssuerAudience turns on issuer/audience verification during
	// validation. Off by default (permissive demo profile); hardened
	// deployments set it to true.
	EnforceIssuerAudience bool
	// TTL is the fixed validity window. Defaults to 30 minutes.
	TTL time.Duration
}

// Claims is the claim set carried by every issued credential.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Service issues and validates credentials with a single symmetric key.
type Service struct {
	cfg Config
}

// NewService validates cfg and returns a Service. A missing secret is a
// configuration error and must abort startup.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Service{cfg: cfg}, nil
}

// TTL returns the configured validity window.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Issue builds the claim set for user and returns the signed compact token.
// The jti is freshly generated on every call; everything else is derived
// deterministically from the user and the clock.
func (s *Service) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.Secret))
}

// Validate parses and verifies tokenString and returns its claim set. The
// signature is verified before any claim is trusted, and expiry is checked
// with zero clock-skew tolerance: a token is rejected at or after its exact
// expiry instant.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.EnforceIssuerAudience {
		opts = append(opts,
			jwt.WithIssuer(s.cfg.Issuer),
			jwt.WithAudience(s.cfg.Audience),
		)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, mapParseError(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// mapParseError translates golang-jwt errors into the package's sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	default:
		return ErrInvalidClaims
	}
}
