package jwt

import (
	"testing"
	"time"

	"healthcare-admin-api/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doctor@example.com", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if tokenID == "" {
		t.Fatal("GenerateAccessToken() returned empty token ID")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "doctor@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "doctor@example.com")
	}
	if claims.RoleID != 2 {
		t.Errorf("RoleID = %d, want 2", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestGenerateRefreshTokenType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "patient@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, RefreshToken)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:        "different-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() with wrong secret should fail")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("ValidateToken() on expired token should fail")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() on malformed input should fail")
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	_, first, err := svc.GenerateAccessToken(userID, "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	_, second, err := svc.GenerateAccessToken(userID, "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if first == second {
		t.Error("consecutive tokens should carry distinct token IDs")
	}
}
