package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasRole_ExplicitRoles(t *testing.T) {
	u := NewUser("u1", "t1", KindStaff, []string{"admin"}, nil)

	assert.True(t, u.HasRole("admin"))
	assert.False(t, u.HasRole("root"))
}

func TestUser_HasRole_Wildcard(t *testing.T) {
	u := NewUser("u1", "t1", KindStaff, []string{"*"}, nil)

	assert.True(t, u.HasRole("admin"))
	assert.True(t, u.HasRole("anything"))
}

func TestUser_HasRole_OverrideFallback(t *testing.T) {
	// No explicit roles: role derives from the tenant-override convention.
	plain := NewUser("u1", "t1", KindCustomer, nil, nil)
	assert.True(t, plain.HasRole("user"))
	assert.False(t, plain.IsAdmin())

	admin := plain.WithOverrideTenant("t2")
	assert.True(t, admin.HasRole("admin"))
	assert.True(t, admin.IsAdmin())

	root := plain.WithOverrideTenant("t1")
	assert.True(t, root.HasRole("root"))
	assert.True(t, root.IsAdmin())
}

func TestUser_TenantID_Override(t *testing.T) {
	u := NewUser("u1", "t1", KindStaff, nil, nil)
	assert.Equal(t, "t1", u.TenantID())

	o := u.WithOverrideTenant("t9")
	assert.Equal(t, "t9", o.TenantID())
	assert.Equal(t, "t1", o.HomeTenantID())
}

func TestUser_HasPermission(t *testing.T) {
	u := NewUser("u1", "t1", KindStaff, nil, []string{PermissionPublishReserveStatus})

	assert.True(t, u.HasPermission(PermissionPublishReserveStatus))
	assert.False(t, u.HasPermission("something-else"))
}

func TestUser_IsZero(t *testing.T) {
	assert.True(t, User{}.IsZero())
	assert.False(t, NewUser("u1", "t1", KindCustomer, nil, nil).IsZero())
}
