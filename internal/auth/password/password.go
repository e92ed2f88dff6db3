// Package password wraps bcrypt hashing so credential handling has one home.
// Plaintext passwords never leave this package's call sites unhashed.
package password

import "golang.org/x/crypto/bcrypt"

const hashCost = 10

// Hash derives a bcrypt hash from the plaintext password.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks a plaintext password against a stored hash.
// Returns an error when they do not match.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
