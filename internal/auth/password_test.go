// ABOUTME: Unit tests for bcrypt password hashing and verification
// ABOUTME: Covers salting, round trips, mismatches, and malformed digests

package auth

import (
	"testing"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	digest, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !hasher.Verify("secret1", digest) {
		t.Error("Verify() should accept the original plaintext")
	}
	if hasher.Verify("secret2", digest) {
		t.Error("Verify() should reject a different plaintext")
	}
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same plaintext should differ (fresh salt per call)")
	}

	// Both still verify
	if !hasher.Verify("same password", first) || !hasher.Verify("same password", second) {
		t.Error("both digests should verify against the original plaintext")
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	hasher := NewBcryptHasher()

	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty digest", digest: ""},
		{name: "garbage digest", digest: "not-a-bcrypt-digest"},
		{name: "truncated digest", digest: "$2a$10$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Malformed digests verify as false, they never panic or error
			if hasher.Verify("anything", tt.digest) {
				t.Error("Verify() should return false for a malformed digest")
			}
		})
	}
}

func TestBcryptHasher_DummyVerify(t *testing.T) {
	hasher := NewBcryptHasher()

	// Just exercises the path; the point is that it performs a real bcrypt
	// comparison without needing a stored digest.
	hasher.DummyVerify()
}
