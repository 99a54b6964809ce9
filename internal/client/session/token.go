// Package session signs and verifies the token stored alongside the
// persisted session pointer, so a hand-edited or stale pointer is rejected
// on restore.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the user the session belongs to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

func GenerateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    common.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return s, nil
}

// UserIDFromToken verifies tokenString and returns the user it was issued
// for. Expired tokens yield common.ErrTokenExpired; anything else that does
// not verify yields common.ErrInvalidToken.
func UserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(common.AppName),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case err != nil:
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	case !token.Valid || claims.UserID == "":
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
