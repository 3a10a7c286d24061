package utils

import (
	"testing"
	"time"

	"resolvewise/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	in := models.Session{UserID: 2, Name: "Jane Doe", Email: "customer@resolvewise.com", Role: models.RoleCustomer}
	tok, err := SignSession("secret", in, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	out, err := ParseSession("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestParseSessionRejectsWrongSecret(t *testing.T) {
	tok, err := SignSession("secret", models.Session{UserID: 1}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSession("other", tok); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseSessionRejectsExpired(t *testing.T) {
	tok, err := SignSession("secret", models.Session{UserID: 1}, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSession("secret", tok); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "password") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "Password") {
		t.Fatal("wrong password accepted")
	}
}
