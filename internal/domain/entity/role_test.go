package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("merchant").IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Admin").IsValid())
}

func TestRoleOrDefault(t *testing.T) {
	assert.Equal(t, RoleUser, RoleOrDefault(""))
	assert.Equal(t, RoleAdmin, RoleOrDefault(RoleAdmin))
}

func TestSessionClaim_IsAdmin(t *testing.T) {
	assert.True(t, SessionClaim{UserID: 1, Role: RoleAdmin}.IsAdmin())
	assert.False(t, SessionClaim{UserID: 1, Role: RoleUser}.IsAdmin())
}

func TestUser_IsActive(t *testing.T) {
	var missing *User
	assert.False(t, missing.IsActive())
	assert.True(t, (&User{ID: 1}).IsActive())
	assert.False(t, (&User{ID: 1, IsDeleted: true}).IsActive())
}
