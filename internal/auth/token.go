package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or expiry
// verification.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenValidity is how long an issued credential token lives.
const DefaultTokenValidity = 14 * 24 * time.Hour

// Identity is the authenticated principal a verified token resolves to.
type Identity struct {
	Email string
	ID    string
}

// Claims embeds the identity into the signed token.
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"id"`
}

// GenerateToken issues an HS256-signed token for identity.
func GenerateToken(identity Identity, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email:  identity.Email,
		UserID: identity.ID,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the embedded
// identity.
func VerifyToken(tokenString string, secret []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{Email: claims.Email, ID: claims.UserID}, nil
}
