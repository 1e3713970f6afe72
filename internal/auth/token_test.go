package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject: got %q, want %q", subject, "alice")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Move the clock past the expiry before parsing.
	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := issuer.Parse(token); err == nil {
		t.Error("Parse accepted an expired token")
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Error("Parse accepted a token signed with a different secret")
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Parse("not.a.token"); err == nil {
		t.Error("Parse accepted a malformed token")
	}
}

func TestTokenIssuer_MissingSubject(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	// Hand-build a token with exp but no sub, signed with the right secret.
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(token); err != ErrMissingSubject {
		t.Errorf("Parse: got %v, want ErrMissingSubject", err)
	}
}

func TestTokenIssuer_MissingExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{Subject: "alice"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Error("Parse accepted a token without an exp claim")
	}
}

func TestTokenIssuer_WrongAlgorithm(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	// HS512 is still HMAC but not the accepted algorithm.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Error("Parse accepted a token signed with a non-accepted algorithm")
	}
}
