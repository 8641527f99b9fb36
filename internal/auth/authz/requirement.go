// Package authz evaluates declarative authorization requirements against the
// claim set extracted from a validated credential. Requirements are plain
// values attached to routes; the gate decides, the transport layer enforces.
package authz

// DefaultPolicy names the behaviour for operations with no attached
// requirement. It is an explicit configuration choice, never a fallthrough.
type DefaultPolicy string

const (
	// PolicyDeny rejects requests without authenticated claims (hardened default).
	PolicyDeny DefaultPolicy = "deny"
	// PolicyAllow lets every request through (permissive demo profile).
	PolicyAllow DefaultPolicy = "allow"
)

type kind int

const (
	kindDefault kind = iota
	kindAnonymous
	kindRoles
	kindClaim
)

// Requirement is a declarative predicate over claims. The zero value carries
// no requirement and defers to the gate's default policy.
type Requirement struct {
	kind       kind
	roles      []string
	claimName  string
	claimValue string
}

// AllowAnonymous is always satisfied and overrides any requirement declared
// on an enclosing scope.
func AllowAnonymous() Requirement {
	return Requirement{kind: kindAnonymous}
}

// RequireRoles is satisfied when the caller's role claim equals any of roles.
// Comparison is case-sensitive, as issued.
func RequireRoles(roles ...string) Requirement {
	return Requirement{kind: kindRoles, roles: roles}
}

// RequireClaim is satisfied when the claim set contains exactly the given
// name/value pair.
func RequireClaim(name, value string) Requirement {
	return Requirement{kind: kindClaim, claimName: name, claimValue: value}
}

// Anonymous reports whether the requirement admits unauthenticated callers.
func (r Requirement) Anonymous() bool {
	return r.kind == kindAnonymous
}

// ClaimSet is the minimal view of a validated credential the gate needs.
// Authenticated reports whether a credential was presented and validated;
// Role returns the role claim; Get returns an arbitrary claim by name.
type ClaimSet interface {
	Authenticated() bool
	Role() string
	Get(name string) (string, bool)
}

// Gate evaluates requirements. DefaultPolicy applies to zero requirements.
type Gate struct {
	defaultPolicy DefaultPolicy
}

// NewGate returns a Gate with the given default policy. Unrecognised values
// collapse to PolicyDeny.
func NewGate(policy DefaultPolicy) *Gate {
	if policy != PolicyAllow {
		policy = PolicyDeny
	}
	return &Gate{defaultPolicy: policy}
}

// Authorize reports whether claims satisfy req. Denials are uniform: the
// caller learns only allow or deny, never which predicate failed.
func (g *Gate) Authorize(claims ClaimSet, req Requirement) bool {
	switch req.kind {
	case kindAnonymous:
		return true
	case kindRoles:
		if claims == nil || !claims.Authenticated() {
			return false
		}
		role := claims.Role()
		for _, allowed := range req.roles {
			if role == allowed {
				return true
			}
		}
		return false
	case kindClaim:
		if claims == nil || !claims.Authenticated() {
			return false
		}
		v, ok := claims.Get(req.claimName)
		return ok && v == req.claimValue
	default:
		if g.defaultPolicy == PolicyAllow {
			return true
		}
		return claims != nil && claims.Authenticated()
	}
}
