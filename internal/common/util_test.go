package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray_Length(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.Len(t, b, 32)
	if string(a) == string(b) {
		t.Logf("warning: two random arrays are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret1")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 7), buf)

	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "at least 6")
}
