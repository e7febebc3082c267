package auth

import (
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPassword("s3cret", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	tok, err := tokens.Issue("a@example.com", "applicant", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "a@example.com" {
		t.Errorf("Subject = %q", claims.Subject)
	}
	if claims.Role != "applicant" || claims.Username != "alice" {
		t.Errorf("Role/Username = %q/%q", claims.Role, claims.Username)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokens("secret-a", time.Hour).Issue("a@example.com", "applicant", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := NewTokens("secret-b", time.Hour).Verify(tok); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	tok, err := tokens.Issue("a@example.com", "applicant", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := tokens.Verify(tok); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	if _, err := tokens.Verify("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}
