// Package policy holds the authorization decisions shared by every resource service.
// The functions are pure: they look only at the requester's claim and the target's owner.
package policy

import (
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/errors"
)

// RequireRole allows the request only when the claim holds required.
func RequireRole(claim entity.SessionClaim, required entity.Role) error {
	if claim.Role != required {
		return errors.Wrapf(domainerrors.ErrForbidden, "role %q required", required)
	}

	return nil
}

// RequireOwnerOrAdmin allows the request when the requester owns the resource or is an admin.
// Admin always wins over ownership.
func RequireOwnerOrAdmin(claim entity.SessionClaim, ownerID int64) error {
	if claim.IsAdmin() || claim.UserID == ownerID {
		return nil
	}

	return errors.Wrap(domainerrors.ErrForbidden, "requester is neither owner nor admin")
}
