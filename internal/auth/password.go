// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Includes a dummy compare to keep login timing uniform for unknown usernames

package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt hash of an arbitrary string. Comparing against it
// when a username doesn't exist keeps login timing independent of whether
// the account is real, preventing username enumeration via response times.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns a bcrypt digest of the given password. Each call
// salts independently, so hashing the same password twice yields different
// digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password produced the given bcrypt digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// DummyCompare burns the same work as a real password check. Call it on the
// unknown-username path before returning the generic credentials error.
func DummyCompare(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
