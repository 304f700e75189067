package ports

import (
	"safecity-service/internal/domain"
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns domain.ErrInvalidPassword when password does not match hash.
	Compare(hash, password string) error
}

// Claims identify the caller behind an access token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(u *domain.User) (string, error)
	Parse(token string) (Claims, error)
}
