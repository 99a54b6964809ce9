package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics if the system random source fails.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place. Passwords read from the terminal are
// wiped with it once they have been hashed or verified.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
