// ABOUTME: Unit tests for bcrypt password hashing and verification
// ABOUTME: Covers round-trip, rejection, and per-call salting

package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "secret1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("secret1", hash) {
		t.Error("CheckPassword() = false for the original password")
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if CheckPassword("secret2", hash) {
		t.Error("CheckPassword() = true for a different password")
	}
	if CheckPassword("", hash) {
		t.Error("CheckPassword() = true for an empty password")
	}
}

func TestHashPassword_SaltsPerCall(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (per-call salt)")
	}

	// Both still verify
	if !CheckPassword("secret1", first) || !CheckPassword("secret1", second) {
		t.Error("both salted hashes should verify the original password")
	}
}
