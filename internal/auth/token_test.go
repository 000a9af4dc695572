package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tripplanner/internal/domain"
)

func TestIssueAndParseToken(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := IssueToken(secret, 42, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := ParseToken(secret, tok)
	if err != nil || id != 42 {
		t.Fatalf("parse got %d %v", id, err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte("s3cret")
	tok, _ := IssueToken(secret, 42, time.Hour)
	if _, err := ParseToken([]byte("other"), tok); !domain.IsUnauthorized(err) {
		t.Fatalf("wrong secret should be unauthorized, got %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	s, _ := expired.SignedString(secret)
	if _, err := ParseToken(secret, s); !domain.IsUnauthorized(err) {
		t.Fatalf("expired token should be unauthorized, got %v", err)
	}

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	s, _ = noUser.SignedString(secret)
	if _, err := ParseToken(secret, s); !domain.IsUnauthorized(err) {
		t.Fatalf("token without user_id should be unauthorized, got %v", err)
	}

	if _, err := ParseToken(secret, "garbage"); !domain.IsUnauthorized(err) {
		t.Fatalf("garbage should be unauthorized, got %v", err)
	}
}

func TestIssueTokenEmptySecret(t *testing.T) {
	if _, err := IssueToken(nil, 1, time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
