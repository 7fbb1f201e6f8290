package entity

// SessionClaim is the identity carried by a validated access token.
// Role is captured when the token is issued and is not refreshed until the next login.
type SessionClaim struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the claim holds the admin role.
func (c SessionClaim) IsAdmin() bool {
	return c.Role == RoleAdmin
}
