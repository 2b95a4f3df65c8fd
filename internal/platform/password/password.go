// Package password provides one-way password hashing and verification using bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DummyDigest is a valid bcrypt digest of a random password nobody knows.
// Callers compare against it when no real digest exists so that lookups for
// unknown accounts still pay the bcrypt cost (timing-attack mitigation).
const DummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hash returns the bcrypt digest of plain.
// bcrypt はソルトを毎回生成するため、同じパスワードでも呼び出しごとに異なるダイジェストになります。
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether digest was produced from plain.
// It returns false on any mismatch, including a malformed digest; it never errors.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
