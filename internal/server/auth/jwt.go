// Package auth issues and verifies the short-lived access tokens carried on
// authenticated requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flaviaglenda/turmas/internal/common"
)

// Claims extends the registered JWT claims with the authenticated
// identity id.
type Claims struct {
	jwt.RegisteredClaims
	IdentityID string `json:"identity_id"`
}

// GenerateToken signs an HS256 access token for the given identity.
func GenerateToken(identityID string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		IdentityID: identityID,
	})

	return token.SignedString(secretKey)
}

// IdentityIDFromToken verifies tokenString and returns the identity id it
// carries. Expired tokens yield common.ErrTokenExpired so callers can
// distinguish them from malformed ones and trigger a refresh.
func IdentityIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.IdentityID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.IdentityID, nil
}
