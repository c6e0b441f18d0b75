// Package auth provides the caller identity and authorization checks the
// query engine consumes.
package auth

// Permission names consumed by the lot query engine.
const (
	PermissionPublishReserveStatus = "publish-reserve-status"
)

// Kind classifies the authenticated principal.
type Kind string

// Kind values.
const (
	KindCustomer Kind = "customer"
	KindStaff    Kind = "staff"
)

// User is the resolved caller identity. The engine never inspects roles
// directly; it asks HasPermission / IsAdmin and reads the ids.
type User struct {
	id               string
	tenantID         string
	overrideTenantID string
	kind             Kind
	roles            []string
	permissions      []string
}

// NewUser creates a User.
func NewUser(id, tenantID string, kind Kind, roles, permissions []string) User {
	return User{
		id:          id,
		tenantID:    tenantID,
		kind:        kind,
		roles:       append([]string{}, roles...),
		permissions: append([]string{}, permissions...),
	}
}

// WithOverrideTenant returns a copy acting on behalf of another tenant.
func (u User) WithOverrideTenant(tenantID string) User {
	u.overrideTenantID = tenantID
	return u
}

// ID returns the user's row id.
func (u User) ID() string { return u.id }

// Kind returns the principal kind.
func (u User) Kind() Kind { return u.kind }

// TenantID returns the effective tenant id, honoring an override.
func (u User) TenantID() string {
	if u.overrideTenantID != "" {
		return u.overrideTenantID
	}
	return u.tenantID
}

// HomeTenantID returns the user's own tenant id, ignoring overrides.
func (u User) HomeTenantID() string { return u.tenantID }

// HasRole reports whether the user holds the given role. A "*" role grants
// everything. Users without an explicit role list fall back to the
// tenant-override convention: overriding your own tenant means root,
// overriding another tenant means admin, no override means user.
func (u User) HasRole(role string) bool {
	if len(u.roles) > 0 {
		for _, r := range u.roles {
			if r == role || r == "*" {
				return true
			}
		}
		return false
	}

	switch {
	case u.overrideTenantID != "" && u.tenantID == u.overrideTenantID:
		return role == "root"
	case u.overrideTenantID != "":
		return role == "admin"
	default:
		return role == "user"
	}
}

// HasPermission reports whether the user holds the named permission.
func (u User) HasPermission(permission string) bool {
	for _, p := range u.permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin or root role.
func (u User) IsAdmin() bool {
	return u.HasRole("admin") || u.HasRole("root")
}

// IsCustomer reports whether the principal is a storefront customer.
// Only customers get caller-scoped query behavior (own bids, watches).
func (u User) IsCustomer() bool {
	return u.kind == KindCustomer
}

// IsZero reports whether this is the absent (unauthenticated) user.
func (u User) IsZero() bool {
	return u.id == "" && u.tenantID == ""
}
