package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// bearerTokenTTL is how long a mobile crew token stays valid.
const bearerTokenTTL = 30 * 24 * time.Hour

// installerClaims is the JWT claim set issued to the mobile crew app.
type installerClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenVerifier issues and verifies HMAC-signed bearer tokens for the mobile
// crew API. Token issuance happens at mobile login; everything else only
// verifies.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier returns a TokenVerifier signing with the given secret.
func NewTokenVerifier(secret []byte) *TokenVerifier {
	return &TokenVerifier{secret: secret}
}

// Issue signs a bearer token for the given identity.
func (v *TokenVerifier) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := installerClaims{
		Role: id.Role,
		Name: id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(bearerTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the embedded identity.
func (v *TokenVerifier) Verify(token string) (Identity, error) {
	var claims installerClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("token invalid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("parse subject: %w", err)
	}
	return Identity{UserID: userID, Role: claims.Role, Name: claims.Name}, nil
}
