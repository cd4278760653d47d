package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New().String()

	token, err := manager.GenerateToken(userID, "demo@neowealth.app")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID)
	}
	if claims.Email != "demo@neowealth.app" {
		t.Errorf("Email = %q, want demo@neowealth.app", claims.Email)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateToken(uuid.New().String(), "")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() with wrong secret succeeded, want error")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateToken(uuid.New().String(), "")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("ValidateToken() on expired token succeeded, want error")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	if _, err := manager.ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken() on garbage succeeded, want error")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("demo1234")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPasswordHash("demo1234", hash) {
		t.Error("CheckPasswordHash() with correct password = false")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("CheckPasswordHash() with wrong password = true")
	}
}
