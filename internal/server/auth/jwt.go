// Package auth issues and verifies the session tokens handed out by the
// unlock endpoint.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guncedev/gunce/internal/common"
)

const subject = "diary"

// Claims carries the registered claim set; the diary is single-user so no
// custom claims are needed beyond the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a session token valid for the given duration.
func GenerateToken(secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// VerifyToken checks signature, expiry and subject. Any failure maps to
// common.ErrInvalidToken so the transport layer needs a single check.
func VerifyToken(tokenString string, secretKey []byte) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secretKey, nil
		})
	if err != nil || !token.Valid {
		return common.ErrInvalidToken
	}
	if claims.Subject != subject {
		return common.ErrInvalidToken
	}
	return nil
}
