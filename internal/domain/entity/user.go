// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is a registered account. It owns zero or more blogs.
type User struct {
	ID           int64     // Database-assigned identifier.
	FirstName    string    // Given name, never empty.
	LastName     string    // Family name, never empty.
	Email        string    // Login identifier, unique across active and deleted users.
	PasswordHash string    // bcrypt digest. Never leaves the service.
	Role         Role      // Authorization role, RoleUser unless set at registration.
	IsDeleted    bool      // Soft-delete flag. Once true the account is terminal.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// IsActive reports whether the user has not been soft-deleted.
func (u *User) IsActive() bool {
	return u != nil && !u.IsDeleted
}
