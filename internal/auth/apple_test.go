// ABOUTME: Tests for Apple identity token verification
// ABOUTME: Serves a fake JWKS endpoint and signs tokens with a local RSA key

package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKid = "test-key-1"

// newJWKSServer starts a server publishing the public half of key under kid.
// The returned counter tracks how many fetches the verifier performed.
func newJWKSServer(t *testing.T, key *rsa.PrivateKey, kid string) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		pub := key.Public().(*rsa.PublicKey)
		doc := map[string]any{
			"keys": []map[string]string{
				{
					"kty": "RSA",
					"kid": kid,
					"alg": "RS256",
					"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
					"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)
	return server, &fetches
}

// signIdentityToken signs an RS256 token the way Apple would.
func signIdentityToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validAppleClaims(email string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   appleIssuer,
		"aud":   appleAudience,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func newTestRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestAppleVerifier_ValidToken(t *testing.T) {
	key := newTestRSAKey(t)
	server, fetches := newJWKSServer(t, key, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	token := signIdentityToken(t, key, testKid, validAppleClaims("someone@icloud.com"))

	email, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
	require.NoError(t, err)
	assert.Equal(t, "someone@icloud.com", email)
	assert.Equal(t, int64(1), fetches.Load())
}

func TestAppleVerifier_RefetchesKeysEveryVerification(t *testing.T) {
	key := newTestRSAKey(t)
	server, fetches := newJWKSServer(t, key, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	token := signIdentityToken(t, key, testKid, validAppleClaims("someone@icloud.com"))

	for range 3 {
		_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), fetches.Load())
}

func TestAppleVerifier_UnsupportedProvider_NoNetworkCall(t *testing.T) {
	key := newTestRSAKey(t)
	server, fetches := newJWKSServer(t, key, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	_, err := verifier.VerifyIdentityToken(context.Background(), "any-token", "google")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
	assert.Equal(t, int64(0), fetches.Load(), "unsupported provider must fail before any network call")
}

func TestAppleVerifier_KeyNotFound(t *testing.T) {
	key := newTestRSAKey(t)
	server, _ := newJWKSServer(t, key, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	token := signIdentityToken(t, key, "unknown-kid", validAppleClaims("someone@icloud.com"))

	_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestAppleVerifier_WrongSigningKey(t *testing.T) {
	published := newTestRSAKey(t)
	attacker := newTestRSAKey(t)
	server, _ := newJWKSServer(t, published, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	// Signed by a different key but claiming the published kid
	token := signIdentityToken(t, attacker, testKid, validAppleClaims("someone@icloud.com"))

	_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)
}

func TestAppleVerifier_ClaimMismatches(t *testing.T) {
	key := newTestRSAKey(t)
	server, _ := newJWKSServer(t, key, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{
			name:   "wrong audience",
			mutate: func(c jwt.MapClaims) { c["aud"] = "some.other.app" },
		},
		{
			name:   "wrong issuer",
			mutate: func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" },
		},
		{
			name:   "expired",
			mutate: func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validAppleClaims("someone@icloud.com")
			tt.mutate(claims)
			token := signIdentityToken(t, key, testKid, claims)

			_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
			assert.ErrorIs(t, err, ErrInvalidIdentityToken)
		})
	}
}

func TestAppleVerifier_MissingEmailClaim(t *testing.T) {
	key := newTestRSAKey(t)
	server, _ := newJWKSServer(t, key, testKid)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)

	claims := validAppleClaims("")
	delete(claims, "email")
	token := signIdentityToken(t, key, testKid, claims)

	_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
	assert.ErrorIs(t, err, ErrMissingEmailClaim)
}

func TestAppleVerifier_KeyFetchFailure(t *testing.T) {
	key := newTestRSAKey(t)
	server, _ := newJWKSServer(t, key, testKid)
	server.Close() // endpoint unreachable

	verifier := NewAppleVerifierWithKeysURL(nil, server.URL)
	token := signIdentityToken(t, key, testKid, validAppleClaims("someone@icloud.com"))

	_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
	assert.ErrorIs(t, err, ErrKeyFetchFailed)
}

func TestAppleVerifier_KeyFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	key := newTestRSAKey(t)
	verifier := NewAppleVerifierWithKeysURL(server.Client(), server.URL)
	token := signIdentityToken(t, key, testKid, validAppleClaims("someone@icloud.com"))

	_, err := verifier.VerifyIdentityToken(context.Background(), token, ProviderApple)
	assert.ErrorIs(t, err, ErrKeyFetchFailed)

	var invalid bool
	if errors.Is(err, ErrInvalidIdentityToken) {
		invalid = true
	}
	assert.False(t, invalid, "fetch failure must not masquerade as an invalid token")
}
