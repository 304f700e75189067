package auth

import (
	"errors"
	"fmt"
	"safecity-service/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// bcrypt implementation of the PasswordHasher port.
type BcryptHasher struct{ Cost int }

func NewBcryptHasher() BcryptHasher { return BcryptHasher{Cost: DefaultCost} }

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidPassword
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
