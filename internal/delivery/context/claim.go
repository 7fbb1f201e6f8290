package context

import (
	"quill/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyClaim is the echo.Context key holding the validated session claim.
const KeyClaim ContextKey = "session_claim"

// SetClaim stores the validated session claim in echo.Context.
func SetClaim(c echo.Context, claim entity.SessionClaim) {
	c.Set(string(KeyClaim), claim)
}

// GetClaim returns the session claim set by the authentication middleware.
func GetClaim(c echo.Context) (entity.SessionClaim, bool) {
	claim, ok := c.Get(string(KeyClaim)).(entity.SessionClaim)
	if !ok || claim.UserID <= 0 {
		return entity.SessionClaim{}, false
	}

	return claim, true
}
