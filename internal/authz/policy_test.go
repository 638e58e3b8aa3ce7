package authz

import (
	"testing"

	"lab-document-tracking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(domain.RoleSuperadmin))
	assert.False(t, CanManageUsers(domain.RoleAdmin))
	assert.False(t, CanManageUsers(""))
	assert.False(t, CanManageUsers("Superadmin"))
}

// Self-deletion is forbidden regardless of role
func TestCanDeleteUser_SelfDeletionForbidden(t *testing.T) {
	assert.False(t, CanDeleteUser(5, 5))
	assert.True(t, CanDeleteUser(5, 6))
	assert.True(t, CanDeleteUser(6, 5))
}

func TestCanOperateOnDocuments(t *testing.T) {
	institutionID := uint64(3)
	assert.True(t, CanOperateOnDocuments(&institutionID))
	assert.False(t, CanOperateOnDocuments(nil))
}
