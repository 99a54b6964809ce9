// Package cryptox implements the salted one-way password encoding stored on
// user records.
//
// Encoded form:
//
//	argon2id$<base64 salt>$<base64 key>
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/footcap/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	scheme  = "argon2id"
	saltLen = 16
	keyLen  = 32
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id
// (1 pass, 64 MiB, 4 lanes).
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keyLen)
}

// HashPassword returns the encoded hash of password under a fresh random salt.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := DeriveKey(password, salt)
	return strings.Join([]string{
		scheme,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$")
}

// VerifyPassword reports whether password matches encoded. A malformed
// encoding is returned as an error so callers can tell corruption apart from
// a wrong password.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}

	got := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
