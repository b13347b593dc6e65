package auth

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("alice@x.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Email != "alice@x.com" {
		t.Errorf("Email = %q, want alice@x.com", claims.Email)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-one", time.Hour).Generate("alice@x.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := NewJWTManager("secret-two", time.Hour).Validate(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	token, err := NewJWTManager("test-secret", -time.Minute).Generate("alice@x.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := NewJWTManager("test-secret", time.Hour).Validate(token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := NewJWTManager("test-secret", time.Hour).Validate("not.a.token"); err == nil {
		t.Error("malformed token was accepted")
	}
}
