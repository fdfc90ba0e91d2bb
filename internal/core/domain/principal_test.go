package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalAllowed(t *testing.T) {
	t.Run("admin passes every capability", func(t *testing.T) {
		p := Principal{Role: RoleAdmin}
		assert.True(t, p.Allowed(CapApproveRosters))
		assert.True(t, p.Allowed(CapManageEmployees))
	})

	t.Run("manager passes every capability", func(t *testing.T) {
		p := Principal{Role: RoleManager}
		assert.True(t, p.Allowed(CapViewAnalytics))
		assert.True(t, p.Allowed(CapManageRoles))
	})

	t.Run("employee needs the capability in the permission map", func(t *testing.T) {
		p := Principal{
			Role:        RoleEmployee,
			Permissions: map[string]bool{CapViewAllRosters: true},
		}
		assert.True(t, p.Allowed(CapViewAllRosters))
		assert.False(t, p.Allowed(CapApproveRosters))
	})

	t.Run("nil permission map denies", func(t *testing.T) {
		p := Principal{Role: RoleGuest}
		assert.False(t, p.Allowed(CapViewAllRosters))
	})
}

func TestIsManagerOrAdmin(t *testing.T) {
	assert.True(t, Principal{Role: RoleAdmin}.IsManagerOrAdmin())
	assert.True(t, Principal{Role: RoleManager}.IsManagerOrAdmin())
	assert.False(t, Principal{Role: RoleEmployee}.IsManagerOrAdmin())
	assert.False(t, Principal{Role: RoleGuest}.IsManagerOrAdmin())
}
