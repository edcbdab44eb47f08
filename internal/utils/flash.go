package utils // package utils provides helpers for signed one-shot cookies

import (
	"crypto/sha256"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// FlashTTL bounds how long an unread flash message stays valid.
const FlashTTL = 5 * time.Minute

// ErrInvalidFlash is returned for a flash token that fails verification.
var ErrInvalidFlash = errors.New("invalid flash token")

// flashKey derives the HMAC key for flash tokens from the configured
// secret, so FLASH_SECRET is never used as a signing key directly.
func flashKey(secret string) []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("stagebook flash cookie v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		// hkdf only fails past 255 blocks of output
		panic(err)
	}
	return key
}

// FlashClaims carries a notification across a redirect.
type FlashClaims struct {
	Category string `json:"cat"`
	Message  string `json:"msg"`
	jwt.RegisteredClaims
}

// NewFlashToken signs an HS256 JWT holding one notification.  The token
// expires after FlashTTL.
func NewFlashToken(secret, category, message string) (string, error) {
	now := time.Now().UTC()
	claims := FlashClaims{
		Category: category,
		Message:  message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(FlashTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(flashKey(secret))
}

// ParseFlashToken verifies raw with secret and returns its notification.
// Tokens signed with another method or key, or expired, are rejected.
func ParseFlashToken(secret, raw string) (category, message string, err error) {
	var claims FlashClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return flashKey(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", errors.Join(ErrInvalidFlash, err)
	}
	return claims.Category, claims.Message, nil
}
