package auth_test

import (
	"testing"

	"calorease/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := auth.NewManager("test-secret")

	token, err := m.GenerateToken("user-1", "budi")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "budi" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewManager("secret-a").GenerateToken("user-1", "budi")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := auth.NewManager("secret-b").ValidateToken(token); err == nil {
		t.Fatalf("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := auth.NewManager("secret").ValidateToken("not-a-token"); err == nil {
		t.Fatalf("expected validation to fail for malformed token")
	}
}
