package session

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	got, err := UserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -time.Second)
	require.NoError(t, err)

	_, err = UserIDFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserIDFromToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := UserIDFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserIDFromToken_ForeignIssuerOrMissingUser(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "other", ExpiresAt: exp},
		UserID:           "u3",
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = UserIDFromToken(foreign, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: common.AppName, ExpiresAt: exp},
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = UserIDFromToken(anonymous, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
