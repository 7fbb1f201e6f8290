package auth

import (
	"strconv"
	"time"

	"quill/config"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/service"
	"quill/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultAccessTokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	accessSecret []byte           // Secret key for signing access tokens.
	accessTTL    time.Duration    // Time-to-live for access tokens.
	issuer       string           // Optional iss claim, enforced on validation when set.
	leeway       time.Duration    // Clock skew tolerated on exp/iat.
	now          func() time.Time // Clock, replaceable in tests.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	svc := &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		accessTTL:    defaultAccessTokenTTL,
		now:          time.Now,
	}

	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		svc.issuer = cfg.Auth.Issuer
		svc.leeway = cfg.Auth.Leeway
	}

	return svc, nil
}

// Issue creates a signed access token for the claim.
func (s *jwtService) Issue(claim entity.SessionClaim) (string, error) {
	now := s.now()
	claims := &service.Claims{
		UserID: claim.UserID,
		Role:   claim.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claim.UserID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	return token, nil
}

// Validate parses the token, checking the HMAC signature, expiry and issuer.
func (s *jwtService) Validate(tokenString string) (*entity.SessionClaim, error) {
	if tokenString == "" {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token is missing")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.accessSecret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token is not valid")
	}

	role := entity.Role(claims.Role)
	if claims.UserID <= 0 || !role.IsValid() {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token carries an invalid identity")
	}

	return &entity.SessionClaim{UserID: claims.UserID, Role: role}, nil
}

// AccessTokenTTL returns the configured duration for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
