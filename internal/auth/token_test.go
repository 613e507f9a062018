package auth

import (
	"testing"
	"time"

	"github.com/opsdesk/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	identity := domain.Identity{ID: "u-1", Role: domain.RoleAgent}
	token, exp, err := tm.GenerateToken(identity)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("token already expired")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("subject = %s, want u-1", claims.Subject)
	}
	if claims.Role != domain.RoleAgent {
		t.Errorf("role = %s, want agent", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(domain.Identity{ID: "u-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected verification failure with wrong secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Error("expected parse failure")
	}
}
