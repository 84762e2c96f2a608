package auth

import (
	"fmt"
	"log/slog"
	"net/http"
)

// PermissionKey is a named capability mapped to the set of roles allowed
// to exercise it. The set is closed: every key referenced by a route must
// appear in the mapping, validated at startup rather than at first request.
type PermissionKey string

const (
	PermissionPendingApprovals PermissionKey = "pending-approvals"
	PermissionJobCardApprove   PermissionKey = "jobcard-approve"
	PermissionPriceUpload      PermissionKey = "price-upload"
	PermissionExporterManage   PermissionKey = "exporter-manage"
	PermissionUserAdmin        PermissionKey = "user-admin"
)

// allowedRoles is immutable after process start and may be read by any
// number of concurrent requests without locking.
var allowedRoles = map[PermissionKey][]Role{
	PermissionPendingApprovals: {RoleAdmin, RoleManager},
	PermissionJobCardApprove:   {RoleAdmin, RoleManager},
	PermissionPriceUpload:      {RoleAdmin, RoleManager},
	PermissionExporterManage:   {RoleAdmin, RoleManager},
	PermissionUserAdmin:        {RoleAdmin},
}

// AllPermissionKeys returns every key in the mapping.
func AllPermissionKeys() []PermissionKey {
	keys := make([]PermissionKey, 0, len(allowedRoles))
	for key := range allowedRoles {
		keys = append(keys, key)
	}
	return keys
}

// RolesForPermission returns the allowed role set for a key.
func RolesForPermission(key PermissionKey) ([]Role, bool) {
	roles, ok := allowedRoles[key]
	return roles, ok
}

// ValidatePermissionMap checks the mapping is exhaustive and well formed.
// Call it at startup so an unmapped or malformed key is a boot failure,
// never a runtime 403.
func ValidatePermissionMap(referenced ...PermissionKey) error {
	for key, roles := range allowedRoles {
		if len(roles) == 0 {
			return fmt.Errorf("permission key %q has an empty role set", key)
		}
		for _, role := range roles {
			if !role.Valid() {
				return fmt.Errorf("permission key %q maps to unknown role %q", key, role)
			}
		}
	}
	for _, key := range referenced {
		if _, ok := allowedRoles[key]; !ok {
			return fmt.Errorf("route references unmapped permission key %q", key)
		}
	}
	return nil
}

// PermissionResult is the structured outcome of a permission check, so
// callers can produce a uniform unauthorized response instead of handling
// a thrown error.
type PermissionResult struct {
	Success    bool   `json:"success"`
	User       *User  `json:"-"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

// PermissionValidator maps a logical permission key to its allowed roles
// and checks the current request's user against that set.
type PermissionValidator struct {
	auth   ServiceAPI
	logger *slog.Logger
}

func NewPermissionValidator(auth ServiceAPI, logger *slog.Logger) *PermissionValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionValidator{auth: auth, logger: logger}
}

// Validate runs extract -> verify -> load -> role check. Fail-closed:
// every ambiguous or erroring state denies. 401 covers all credential
// and identity problems, 403 a valid active user outside the allowed set,
// 500 only an unmapped key, which is a configuration defect.
func (v *PermissionValidator) Validate(r *http.Request, key PermissionKey) PermissionResult {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		token, found := TokenFromRequest(r)
		if !found {
			return PermissionResult{Success: false, Error: "missing credentials", StatusCode: http.StatusUnauthorized}
		}

		resolved, err := v.auth.ResolveUser(token)
		if err != nil {
			v.logger.Warn("permission check: credential rejected", "error", err, "permission", key)
			return PermissionResult{Success: false, Error: "unauthorized", StatusCode: http.StatusUnauthorized}
		}
		user = resolved
	}

	roles, ok := RolesForPermission(key)
	if !ok {
		v.logger.Error("permission check: unmapped permission key", "permission", key)
		return PermissionResult{Success: false, Error: "internal server error", StatusCode: http.StatusInternalServerError}
	}

	if !user.Role.In(roles) {
		v.logger.Warn("permission check: role not permitted",
			"user_id", user.ID,
			"role", user.Role,
			"permission", key)
		return PermissionResult{Success: false, Error: "forbidden", StatusCode: http.StatusForbidden}
	}

	return PermissionResult{Success: true, User: user, StatusCode: http.StatusOK}
}
