package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secreto")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "secreto") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "otro") {
		t.Fatalf("wrong password must not verify")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := SignJWT(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AgentID != 42 {
		t.Fatalf("expected agent id 42, got %d", claims.AgentID)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := SignJWT(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	token, err := SignJWT(42, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatalf("expected parse to fail for expired token")
	}
}
