package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scholarai/scholarai/internal/app/domain/user"
	"github.com/scholarai/scholarai/internal/errs"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatal("expected error for unconfigured secret")
	}
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	u := user.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
	token, err := svc.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != u.ID || claims.Name != u.Name || claims.Email != u.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 24*time.Hour)
	token, err := svc.Issue(user.User{ID: "user-1", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one byte in the payload.
	raw := []byte(token)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	if _, err := svc.Verify(string(raw)); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 24*time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	})
	token, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 24*time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, errs.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyRejectsWrongSigningMethod(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 24*time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
