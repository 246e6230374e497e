package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPurposeAuth is the only purpose minted today. The purpose travels
// inside the signed payload and is stored next to the token server-side, so
// a token can never be replayed for a different use than it was issued for.
const TokenPurposeAuth = "authentication"

var ErrInvalidToken = errors.New("invalid token")

// JWTManager mints and verifies the signed session tokens. The secret is
// process-wide configuration, loaded once at startup and never rotated at
// runtime.
type JWTManager struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTManager(secret string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:   []byte(secret),
		TokenTTL: tokenTTL,
	}
}

type Claims struct {
	UserID  string `json:"uid"`
	Purpose string `json:"prp"`
	jwt.RegisteredClaims
}

// Generate produces a signed token bound to one user and one purpose. Each
// call mints a distinct token: the jti claim is a fresh UUID, so two tokens
// issued in the same second still differ and can be revoked independently.
func (m *JWTManager) Generate(userID, purpose string) (string, time.Time, error) {
	exp := time.Now().Add(m.TokenTTL)
	claims := &Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse verifies signature, signing method, and expiry. Any failure comes
// back as ErrInvalidToken; a passing token only proves cryptographic
// validity, not that the server still honors it.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
