package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps hashing around 250ms on current hardware, slow enough
// for stored credentials without stalling registration.
const bcryptCost = 12

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plain text password matches the hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
