package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pagehub/pages-api/internal/core/domain"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret",
		Issuer:   "pages-api",
		Audience: "pages-clients",
		TTL:      30 * time.Minute,
	}
}

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleUser,
	}
}

func TestNewService_MissingSecret(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	svc, err := NewService(testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	signed, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if parts := strings.Split(signed, "."); len(parts) != 3 {
		t.Fatalf("expected compact three-part token, got %d parts", len(parts))
	}

	claims, err := svc.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Username != "alice" || claims.Email != "alice@example.com" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("expected iat and exp")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 30*time.Minute {
		t.Fatalf("expected exp = iat + 30m, got %s", got)
	}
}

func TestIssue_UniqueTokenID(t *testing.T) {
	svc, _ := NewService(testConfig())

	t1, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	t2, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c1, err := svc.Validate(t1)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	c2, err := svc.Validate(t2)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c1.ID == c2.ID {
		t.Fatalf("expected distinct jti per issuance")
	}
}

func TestValidate_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = time.Nanosecond
	svc, _ := NewService(cfg)

	signed, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := svc.Validate(signed); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	svc, _ := NewService(testConfig())

	for _, in := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := svc.Validate(in); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("input %q: expected ErrMalformedToken, got %v", in, err)
		}
	}
}

func TestValidate_TamperedSignature(t *testing.T) {
	svc, _ := NewService(testConfig())

	signed, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(signed, ".")
	sig := []byte(parts[2])
	// substitute one signature character with a different base64url character
	if sig[0] != 'A' {
		sig[0] = 'A'
	} else {
		sig[0] = 'B'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Validate(tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_WrongKey(t *testing.T) {
	issuer, _ := NewService(testConfig())

	other := testConfig()
	other.Secret = "a-different-secret"
	verifier, _ := NewService(other)

	signed, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Validate(signed); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_IssuerAudienceToggle(t *testing.T) {
	issuerCfg := testConfig()
	issuerCfg.Issuer = "someone-else"
	issuerSvc, _ := NewService(issuerCfg)

	signed, err := issuerSvc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// permissive profile: issuer/audience mismatch is ignored
	permissive, _ := NewService(testConfig())
	if _, err := permissive.Validate(signed); err != nil {
		t.Fatalf("permissive validate: %v", err)
	}

	// hardened profile: mismatch is rejected
	hardenedCfg := testConfig()
	hardenedCfg.EnforceIssuerAudience = true
	hardened, _ := NewService(hardenedCfg)
	if _, err := hardened.Validate(signed); !errors.Is(err, ErrInvalidClaims) {
		t.Fatalf("expected ErrInvalidClaims, got %v", err)
	}

	// hardened profile accepts its own tokens
	own, err := hardened.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := hardened.Validate(own); err != nil {
		t.Fatalf("hardened validate own token: %v", err)
	}
}
