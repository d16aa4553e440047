package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateServiceToken("pos-client", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateServiceToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims["client_id"] != "pos-client" {
		t.Errorf("client_id = %v, want pos-client", claims["client_id"])
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateServiceToken("pos-client", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateServiceToken: %v", err)
	}

	if _, err := ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateServiceToken("pos-client", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken: %v", err)
	}

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("expected validation failure for expired token")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", "test-secret"); err == nil {
		t.Error("expected validation failure for malformed token")
	}
}
