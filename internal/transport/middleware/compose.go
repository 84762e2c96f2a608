package middleware

import (
	"net/http"

	"github.com/frahmantamala/jobcard-management/internal/auth"
)

// Composer combines the auth guard and the audit trail into one reusable
// wrapper so route definitions declare policy, not mechanism.
type Composer struct {
	Guard *Guard
	Trail *AuditTrail
}

func NewComposer(guard *Guard, trail *AuditTrail) *Composer {
	return &Composer{Guard: guard, Trail: trail}
}

// Protect produces RecordAudit(entityType) wrapped around
// RequireAuth(roles...): audit outside, auth inside. The ordering is an
// invariant: every audited call is an authenticated, authorized call,
// and no audit entry can ever be produced for a rejected request.
func (c *Composer) Protect(entityType string, roles ...auth.Role) func(http.Handler) http.Handler {
	record := c.Trail.RecordAudit(entityType)
	guard := c.Guard.RequireAuth(roles...)
	return func(next http.Handler) http.Handler {
		return record(guard(next))
	}
}
