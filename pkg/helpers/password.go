package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a fixed cost factor decided at startup.
// Hashing is deliberately expensive; the cost comes from configuration, not
// a package-level default, so it can be tuned per environment.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash hashes the plain text password using bcrypt. The salt is generated
// per call, so the same input never produces the same stored hash.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare compares a bcrypt hash with a plain password. A mismatch is a
// plain false, never an error.
func (h *PasswordHasher) Compare(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
