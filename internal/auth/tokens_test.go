package auth

import (
	"context"
	"testing"
	"time"

	"hiremate/internal/config"
	"hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/google/uuid"
)

func testManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(config.AuthConfig{
		JWTSecret:      "test-secret-not-for-production",
		AccessTokenTTL: ttl,
	}, nil)
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour)
	userID := uuid.New()

	token, err := m.Issue(userID, types.RoleRecruiter)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("Expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != types.RoleRecruiter {
		t.Errorf("Expected role %q, got %q", types.RoleRecruiter, claims.Role)
	}
	if claims.ID == "" {
		t.Error("Token should carry a jti")
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.Issue(uuid.New(), types.RoleJobSeeker)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := NewTokenManager(config.AuthConfig{
		JWTSecret:      "different-secret",
		AccessTokenTTL: time.Hour,
	}, nil)

	_, err = other.Verify(context.Background(), token)
	if err == nil {
		t.Fatal("Token signed with a different secret should be rejected")
	}
	if errors.TypeOf(err) != errors.ErrorTypeAuth {
		t.Errorf("Expected auth error, got type %q", errors.TypeOf(err))
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	m := testManager(-time.Minute)
	token, err := m.Issue(uuid.New(), types.RoleJobSeeker)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = m.Verify(context.Background(), token)
	if err == nil {
		t.Fatal("Expired token should be rejected")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	m := testManager(time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Verify(context.Background(), token); err == nil {
			t.Errorf("Token %q should be rejected", token)
		}
	}
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	m := testManager(time.Hour)
	userID := uuid.New()

	first, err := m.Issue(userID, types.RoleJobSeeker)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	second, err := m.Issue(userID, types.RoleJobSeeker)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	firstClaims, err := m.Verify(context.Background(), first)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	secondClaims, err := m.Verify(context.Background(), second)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if firstClaims.ID == secondClaims.ID {
		t.Error("Each issued token should carry a distinct jti")
	}
}
