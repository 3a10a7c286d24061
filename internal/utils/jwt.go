package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"resolvewise/internal/models"
)

type Claims struct {
	models.Session
	jwt.RegisteredClaims
}

// SignSession issues an HS256 token carrying a copy of the authenticated
// user. The token is the session: there is no server-side session table.
func SignSession(secret string, sess models.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Session: sess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString([]byte(secret))
}

func ParseSession(secret, token string) (*models.Session, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		sess := c.Session
		return &sess, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
