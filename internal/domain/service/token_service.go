package service

import (
	"time"

	"quill/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for access tokens.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates stateless access tokens.
type TokenService interface {
	// Issue signs a token carrying the claim, valid for AccessTokenTTL.
	Issue(claim entity.SessionClaim) (string, error)

	// Validate verifies signature and expiry and returns the embedded claim.
	// Every failure wraps domainerrors.ErrUnauthenticated.
	Validate(token string) (*entity.SessionClaim, error)

	// AccessTokenTTL returns the configured lifetime of issued tokens.
	AccessTokenTTL() time.Duration
}
