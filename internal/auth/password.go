package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the stored hashes were produced with.
const bcryptCost = 12

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(
		[]byte(plain),
		bcryptCost,
	)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

func ComparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	) == nil
}
