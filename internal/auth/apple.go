// ABOUTME: Federated identity token verification against Apple's public keys
// ABOUTME: Fetches the JWKS endpoint per verification and validates RS256 signatures

package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// Expected values for Apple identity tokens.
const (
	appleKeysURL  = "https://appleid.apple.com/auth/keys"
	appleIssuer   = "https://appleid.apple.com"
	appleAudience = "host.exp.Exponent"
)

// ProviderApple is the only identity provider currently supported.
const ProviderApple = "apple"

// Federated verification errors
var (
	ErrUnsupportedProvider  = errors.New("unsupported identity provider")
	ErrKeyNotFound          = errors.New("no matching public key for token")
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrMissingEmailClaim    = errors.New("identity token has no email claim")
	ErrKeyFetchFailed       = errors.New("fetching provider public keys failed")
)

// IdentityVerifier validates a third-party identity token and returns the
// verified email claim. Nothing else from the provider token is kept.
type IdentityVerifier interface {
	VerifyIdentityToken(ctx context.Context, token, provider string) (email string, err error)
}

// jwk is a single key from the provider's JWKS document.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// jwks is the provider's published key set.
type jwks struct {
	Keys []jwk `json:"keys"`
}

// AppleVerifier implements IdentityVerifier for Sign in with Apple.
// The key set is fetched from Apple on every verification; there is no
// cache, so provider downtime blocks federated sign-in until it recovers.
type AppleVerifier struct {
	client  *http.Client
	keysURL string
}

// NewAppleVerifier creates a verifier using the given HTTP client.
// A nil client falls back to http.DefaultClient.
func NewAppleVerifier(client *http.Client) *AppleVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &AppleVerifier{client: client, keysURL: appleKeysURL}
}

// NewAppleVerifierWithKeysURL creates a verifier against a custom JWKS
// endpoint. Used in tests to point at a local server.
func NewAppleVerifierWithKeysURL(client *http.Client, keysURL string) *AppleVerifier {
	v := NewAppleVerifier(client)
	v.keysURL = keysURL
	return v
}

// VerifyIdentityToken validates the token against the named provider.
// An unsupported provider fails before any network call. On success the
// verified email claim is returned; on any cryptographic or claim-mismatch
// failure the token is rejected outright, never partially trusted.
func (v *AppleVerifier) VerifyIdentityToken(ctx context.Context, token, provider string) (string, error) {
	switch provider {
	case ProviderApple:
		return v.verifyAppleToken(ctx, token)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

func (v *AppleVerifier) verifyAppleToken(ctx context.Context, tokenString string) (string, error) {
	keys, err := v.fetchKeys(ctx)
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: token header has no kid", ErrKeyNotFound)
		}

		for _, key := range keys {
			if key.Kid == kid {
				return rsaPublicKey(key)
			}
		}
		return nil, ErrKeyNotFound
	},
		jwt.WithAudience(appleAudience),
		jwt.WithIssuer(appleIssuer),
		jwt.WithValidMethods([]string{"RS256"}),
	)

	if err != nil {
		// Key absence is a distinct condition from a bad signature.
		if errors.Is(err, ErrKeyNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidIdentityToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", ErrMissingEmailClaim
	}

	return email, nil
}

// fetchKeys retrieves Apple's current public key set. Network failures are
// transient: the caller surfaces them as an authentication failure rather
// than retrying internally.
func (v *AppleVerifier) fetchKeys(ctx context.Context) ([]jwk, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.keysURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFetchFailed, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrKeyFetchFailed, resp.StatusCode)
	}

	var keySet jwks
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFetchFailed, err)
	}

	return keySet.Keys, nil
}

// rsaPublicKey builds an *rsa.PublicKey from a JWK's modulus and exponent.
func rsaPublicKey(key jwk) (*rsa.PublicKey, error) {
	if key.Kty != "RSA" {
		return nil, fmt.Errorf("unexpected key type: %s", key.Kty)
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, fmt.Errorf("decoding key modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, fmt.Errorf("decoding key exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
