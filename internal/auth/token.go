// ABOUTME: JWT token issuance and verification for authenticating API requests
// ABOUTME: Uses HS256 signing with a configurable secret; rejection is deliberately uniform

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted signing secret length in bytes.
const MinSecretLength = 32

// DefaultTokenTTL is the token lifetime used when the config doesn't override it.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for any verification failure: bad signature,
// malformed payload, wrong algorithm, missing claims, or expiry. The caller
// cannot tell which condition failed.
var ErrInvalidToken = errors.New("invalid token")

// ErrSecretTooShort is returned when the configured signing secret is too weak.
var ErrSecretTooShort = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)

// TokenVerifier defines the interface for token verification.
type TokenVerifier interface {
	Verify(tokenString string) (userID string, err error)
}

// JWTVerifier issues and verifies HS256-signed JWTs carrying a user id.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWT verifier with the given secret.
func NewJWTVerifier(secret []byte) (*JWTVerifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	return &JWTVerifier{secret: secret}, nil
}

// Generate creates a new JWT token for the given user ID with expiration.
func (v *JWTVerifier) Generate(userID string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Verify validates the token and extracts the user ID from the "sub" claim.
// All failures collapse into ErrInvalidToken so the response cannot be used
// as an oracle for why a token was rejected.
func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}

// ExpiresAt returns the "exp" claim of a token without verifying its
// signature. It is used only to bound how long a revocation entry must be
// retained; a token we cannot parse gets the zero time and the caller falls
// back to the default TTL.
func (v *JWTVerifier) ExpiresAt(tokenString string) time.Time {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
