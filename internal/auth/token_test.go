package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/election-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: "user-1", Role: domain.RoleVoter}

	token, exp, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if remaining := time.Until(exp); remaining < 59*time.Minute || remaining > 61*time.Minute {
		t.Errorf("expiry %v not about one hour out", remaining)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("uid = %q, want user-1", claims.UserID)
	}
	if claims.Role != domain.RoleVoter {
		t.Errorf("role = %q, want %q", claims.Role, domain.RoleVoter)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -1)
	token, _, err := tm.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleVoter})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected signature mismatch to be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not.a.token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}
