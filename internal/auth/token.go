// ABOUTME: JWT bearer token issuing and verification for settracker
// ABOUTME: Uses HS256 signing with a process-wide secret loaded at startup

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued bearer token stays valid. There is no
// refresh mechanism; expiry forces a full re-authentication.
const TokenTTL = 24 * time.Hour

// MinSecretLength is the minimum signing secret size accepted by NewJWTCodec.
const MinSecretLength = 32

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// Claims is the deterministic claim set embedded in every bearer token.
// Only the principal id and email are ever carried; callers must not assume
// any other claim survives a round trip.
type Claims struct {
	ID    string
	Email string
}

// TokenCodec issues and verifies bearer tokens.
type TokenCodec interface {
	Issue(claims Claims) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// JWTCodec implements TokenCodec using HS256 signed JWTs.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

// NewJWTCodec creates a codec with the given signing secret. A secret
// shorter than MinSecretLength is a configuration error.
func NewJWTCodec(secret []byte) (*JWTCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	return &JWTCodec{secret: secret, now: time.Now}, nil
}

// Issue creates a signed token carrying the principal id and email,
// expiring TokenTTL from now.
func (c *JWTCodec) Issue(claims Claims) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.ID,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	})
	return token.SignedString(c.secret)
}

// Verify checks the token signature and expiry and returns the embedded
// claims. An expired token with a valid signature yields ErrExpiredToken;
// every other failure (bad signature, corrupt structure, wrong algorithm)
// yields ErrInvalidToken. Callers map the two to different HTTP statuses.
func (c *JWTCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// Missing or mistyped claims come back as empty strings; the middleware
	// decides whether an incomplete claim set is acceptable.
	id, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)

	return &Claims{ID: id, Email: email}, nil
}
