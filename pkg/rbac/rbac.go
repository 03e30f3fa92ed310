// Package rbac turns role and ownership checks into a single typed decision,
// so every guarded operation branches on the same Decision value instead of
// comparing role strings in place.
package rbac

import (
	"net/http"

	"github.com/siddhant14g/Real-shop/pkg/middleware"
	"github.com/siddhant14g/Real-shop/pkg/response"
)

// Known roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string // set when denied
}

// Allow is the positive decision.
func Allow() Decision { return Decision{Allowed: true} }

// Deny carries the reason access was refused.
func Deny(reason string) Decision { return Decision{Reason: reason} }

// CheckRole decides whether the caller's role is one of the allowed roles.
func CheckRole(role string, allowed ...string) Decision {
	for _, a := range allowed {
		if role == a {
			return Allow()
		}
	}
	return Deny("insufficient role")
}

// CheckOwner decides whether the caller owns the resource. Admins do not
// bypass ownership here; operations that admit admins combine decisions
// explicitly.
func CheckOwner(callerID, ownerID string) Decision {
	if callerID != "" && callerID == ownerID {
		return Allow()
	}
	return Deny("not the owner")
}

// HasRole returns middleware that admits only callers whose role (placed in
// the request context by the auth middleware) is in roles.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			if d := CheckRole(role, roles...); !d.Allowed {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
