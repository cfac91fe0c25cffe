package auth

import (
	"testing"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", 7*24*time.Hour)

	signed, err := tokens.Issue(42, dom.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Role != dom.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tokens := NewTokens("secret-a", time.Hour)
	other := NewTokens("secret-b", time.Hour)

	signed, err := tokens.Issue(1, dom.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(signed); err == nil {
		t.Fatal("token verified with wrong secret")
	}
}

func TestTokenExpires(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewTokens("test-secret", 7*24*time.Hour)
	tokens.now = func() time.Time { return base }

	signed, err := tokens.Issue(1, dom.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tokens.Verify(signed); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	tokens.now = func() time.Time { return base.Add(7*24*time.Hour + time.Minute) }
	if _, err := tokens.Verify(signed); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	for _, bad := range []string{"", "   ", "not.a.jwt"} {
		if _, err := tokens.Verify(bad); err == nil {
			t.Errorf("verified %q", bad)
		}
	}
}

func TestTokenRejectsZeroUser(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	if _, err := tokens.Issue(0, dom.RoleUser); err == nil {
		t.Fatal("issued token for user 0")
	}
}
