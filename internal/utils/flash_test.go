package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashToken_RoundTrip(t *testing.T) {
	raw, err := NewFlashToken("s3cret", "danger", "Editing artists is not implemented.")
	require.NoError(t, err)

	cat, msg, err := ParseFlashToken("s3cret", raw)
	require.NoError(t, err)
	assert.Equal(t, "danger", cat)
	assert.Equal(t, "Editing artists is not implemented.", msg)
}

func TestFlashToken_WrongSecret(t *testing.T) {
	raw, err := NewFlashToken("s3cret", "success", "hi")
	require.NoError(t, err)

	_, _, err = ParseFlashToken("other", raw)
	assert.ErrorIs(t, err, ErrInvalidFlash)
}

func TestFlashToken_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, FlashClaims{
		Category: "success",
		Message:  "old",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
		},
	})
	raw, err := tok.SignedString(flashKey("s3cret"))
	require.NoError(t, err)

	_, _, err = ParseFlashToken("s3cret", raw)
	assert.ErrorIs(t, err, ErrInvalidFlash)
}

func TestFlashToken_Garbage(t *testing.T) {
	_, _, err := ParseFlashToken("s3cret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidFlash)
}

func TestFlashKey(t *testing.T) {
	k := flashKey("s3cret")
	assert.Len(t, k, 32)
	assert.Equal(t, k, flashKey("s3cret"))
	assert.NotEqual(t, k, flashKey("other"))

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, FlashClaims{
		Message:          "forged",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, _, err = ParseFlashToken("s3cret", raw)
	assert.ErrorIs(t, err, ErrInvalidFlash)
}
