// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Provides the PasswordHasher interface used by the user service

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies local credentials. DummyVerify exists
// so callers can keep failure paths that never reach a real digest on the
// same timing profile as a genuine mismatch.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	DummyVerify()
}

// BcryptHasher implements PasswordHasher using bcrypt. Each Hash call uses
// a fresh random salt, so hashing the same plaintext twice yields different
// digests; the salt travels inside the digest itself.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash produces a salted bcrypt digest of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. The comparison is
// constant time. A malformed digest verifies as false rather than surfacing
// an error into the authentication decision.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// dummyDigest is a valid bcrypt digest of a random string. Comparing against
// it keeps the unknown-email path of local sign-in on the same timing profile
// as the wrong-password path.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// DummyVerify burns one bcrypt comparison and always returns false.
func (h *BcryptHasher) DummyVerify() {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte("dummy password"))
}
