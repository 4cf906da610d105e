package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "u-1", "staff@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "staff@example.com" || claims.Role != "user" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "u-1", "staff@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken("other", token); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword("hunter2", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}
