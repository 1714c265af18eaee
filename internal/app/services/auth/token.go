package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scholarai/scholarai/internal/app/domain/user"
	"github.com/scholarai/scholarai/internal/errs"
)

// Claims are the identity fields encoded in a token.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited identity tokens.
// It is pure: no server-side session state, so tokens stay valid until
// natural expiry regardless of logout.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a token service. An empty secret is a
// configuration error, not a request error.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs identity claims with the server secret and a fixed validity
// window.
func (t *TokenService) Issue(u user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Subject:   u.ID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature and validity window. Any failure, including a
// malformed token, maps to errs.ErrInvalidToken; there is no partial
// acceptance.
func (t *TokenService) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errs.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return Claims{}, errs.ErrInvalidToken
	}
	return *claims, nil
}
