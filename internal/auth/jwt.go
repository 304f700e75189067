package auth

import (
	"errors"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/ports"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// HS256 access tokens carrying the user's id and email.
type JWTIssuer struct {
	Secret    []byte
	ExpiresIn time.Duration
	Now       func() time.Time
}

func NewJWTIssuer(secret string, expiresIn time.Duration) *JWTIssuer {
	return &JWTIssuer{Secret: []byte(secret), ExpiresIn: expiresIn, Now: time.Now}
}

func (j *JWTIssuer) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

func (j *JWTIssuer) Issue(u *domain.User) (string, error) {
	if len(j.Secret) == 0 {
		return "", errors.New("issue token: signing secret is empty")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    u.ID.String(),
		"email": u.Email,
		"exp":   j.now().Add(j.ExpiresIn).Unix(),
	})

	s, err := token.SignedString(j.Secret)
	if err != nil {
		return "", fmt.Errorf("issue token: sign: %w", err)
	}
	return s, nil
}

// Parse verifies the signature and expiry. Any failure maps to domain.ErrUnauthorized.
func (j *JWTIssuer) Parse(tokenString string) (ports.Claims, error) {
	parser := jwt.Parser{}
	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil || !token.Valid {
		return ports.Claims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.Claims{}, domain.ErrUnauthorized
	}

	idStr, _ := mc["id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: bad subject", domain.ErrUnauthorized)
	}

	claims := ports.Claims{UserID: id}
	claims.Email, _ = mc["email"].(string)
	if exp, ok := mc["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if claims.ExpiresAt.IsZero() || !claims.ExpiresAt.After(j.now()) {
		return ports.Claims{}, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	}

	return claims, nil
}
