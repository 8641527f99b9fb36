package authz

import "testing"

type stubClaims struct {
	authenticated bool
	role          string
	claims        map[string]string
}

func (s *stubClaims) Authenticated() bool { return s.authenticated }
func (s *stubClaims) Role() string        { return s.role }
func (s *stubClaims) Get(name string) (string, bool) {
	v, ok := s.claims[name]
	return v, ok
}

func adminClaims() *stubClaims {
	return &stubClaims{authenticated: true, role: "Admin", claims: map[string]string{"role": "Admin"}}
}

func userClaims() *stubClaims {
	return &stubClaims{authenticated: true, role: "User", claims: map[string]string{"role": "User"}}
}

func TestGate_RoleRequirement(t *testing.T) {
	g := NewGate(PolicyDeny)
	req := RequireRoles("Admin")

	if !g.Authorize(adminClaims(), req) {
		t.Fatalf("expected Admin to be allowed")
	}
	if g.Authorize(userClaims(), req) {
		t.Fatalf("expected User to be denied")
	}
	if g.Authorize(nil, req) {
		t.Fatalf("expected missing claims to be denied")
	}
}

func TestGate_RoleRequirement_CaseSensitive(t *testing.T) {
	g := NewGate(PolicyDeny)

	lower := &stubClaims{authenticated: true, role: "admin"}
	if g.Authorize(lower, RequireRoles("Admin")) {
		t.Fatalf("role comparison must be case-sensitive")
	}
}

func TestGate_RoleRequirement_MultipleRoles(t *testing.T) {
	g := NewGate(PolicyDeny)
	req := RequireRoles("Admin", "User")

	if !g.Authorize(userClaims(), req) {
		t.Fatalf("expected User to match the allowed set")
	}
	if g.Authorize(&stubClaims{authenticated: true, role: "Guest"}, req) {
		t.Fatalf("expected Guest to be denied")
	}
}

func TestGate_ClaimRequirement(t *testing.T) {
	g := NewGate(PolicyDeny)
	req := RequireClaim("X", "Y")

	has := &stubClaims{authenticated: true, claims: map[string]string{"X": "Y"}}
	if !g.Authorize(has, req) {
		t.Fatalf("expected exact claim pair to be allowed")
	}

	wrongValue := &stubClaims{authenticated: true, claims: map[string]string{"X": "Z"}}
	if g.Authorize(wrongValue, req) {
		t.Fatalf("expected wrong claim value to be denied")
	}

	missing := &stubClaims{authenticated: true, claims: map[string]string{}}
	if g.Authorize(missing, req) {
		t.Fatalf("expected missing claim to be denied")
	}
}

func TestGate_AllowAnonymous(t *testing.T) {
	g := NewGate(PolicyDeny)

	if !g.Authorize(nil, AllowAnonymous()) {
		t.Fatalf("anonymous requirement must admit missing claims")
	}
	if !g.Authorize(userClaims(), AllowAnonymous()) {
		t.Fatalf("anonymous requirement must admit authenticated callers too")
	}
}

func TestGate_DefaultPolicy(t *testing.T) {
	deny := NewGate(PolicyDeny)
	if deny.Authorize(nil, Requirement{}) {
		t.Fatalf("deny policy must reject unauthenticated requests")
	}
	if !deny.Authorize(userClaims(), Requirement{}) {
		t.Fatalf("deny policy must admit authenticated requests")
	}

	allow := NewGate(PolicyAllow)
	if !allow.Authorize(nil, Requirement{}) {
		t.Fatalf("allow policy must admit unauthenticated requests")
	}
}

func TestNewGate_UnrecognisedPolicy(t *testing.T) {
	g := NewGate(DefaultPolicy("whatever"))
	if g.Authorize(nil, Requirement{}) {
		t.Fatalf("unrecognised policy must collapse to deny")
	}
}
