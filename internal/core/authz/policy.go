// Package authz is the access decision engine. Evaluation is pure: the same
// claims, policy, and ownership input always yield the same verdict, and no
// I/O happens inside a decision. Callers fetch resource ownership beforehand
// and bake it into the policy.
package authz

import "github.com/blogora/blog-api/internal/core/domain"

// Claims is the identity recovered from a verified token. A nil *Claims means
// the request carried no valid token.
type Claims struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == domain.RoleAdmin
}

type policyKind int

const (
	kindPublic policyKind = iota
	kindAnyAuthenticated
	kindSelfOnly
	kindSelfOrAdmin
	kindOwnerOrAdmin
	kindAdminOnly
)

// Policy is one rule from the closed set. Construct with the package
// functions below; the zero value denies everything but Public checks.
type Policy struct {
	kind    policyKind
	subject string // target user id or resource owner id, depending on kind
}

// Public always allows, claim or not.
func Public() Policy { return Policy{kind: kindPublic} }

// AnyAuthenticated allows any request with a valid claim.
func AnyAuthenticated() Policy { return Policy{kind: kindAnyAuthenticated} }

// SelfOnly allows only the user identified by userID. Admins get no override.
func SelfOnly(userID string) Policy { return Policy{kind: kindSelfOnly, subject: userID} }

// SelfOrAdmin allows the user identified by userID, or any admin.
func SelfOrAdmin(userID string) Policy { return Policy{kind: kindSelfOrAdmin, subject: userID} }

// OwnerOrAdmin allows the owner of an already-fetched resource, or any admin.
func OwnerOrAdmin(ownerID string) Policy { return Policy{kind: kindOwnerOrAdmin, subject: ownerID} }

// AdminOnly allows only admins.
func AdminOnly() Policy { return Policy{kind: kindAdminOnly} }

// Reason distinguishes why a request was denied so the transport layer can
// pick between 401 and 403.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonForbidden
)

// Decision is the verdict for one (claims, policy) pair.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Err maps a denial to its domain sentinel. Allowed decisions return nil.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	default:
		return domain.ErrForbidden
	}
}

func allow() Decision { return Decision{Allowed: true} }

func deny(r Reason) Decision { return Decision{Reason: r} }

// Authorize evaluates policy p for the given claims. claims may be nil for
// anonymous requests; only Public allows those.
func Authorize(claims *Claims, p Policy) Decision {
	if p.kind == kindPublic {
		return allow()
	}
	if claims == nil || claims.UserID == "" {
		return deny(ReasonUnauthenticated)
	}

	switch p.kind {
	case kindAnyAuthenticated:
		return allow()
	case kindSelfOnly:
		if claims.UserID == p.subject {
			return allow()
		}
	case kindSelfOrAdmin, kindOwnerOrAdmin:
		if claims.UserID == p.subject || claims.IsAdmin() {
			return allow()
		}
	case kindAdminOnly:
		if claims.IsAdmin() {
			return allow()
		}
	}
	return deny(ReasonForbidden)
}
