package security_test

import (
	"context"
	"testing"
	"time"

	"github.com/academic-hub/csv-portal/internal/security"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := security.NewJWTIssuer([]byte("portal-secret"), time.Hour)

	token, ttl, err := issuer.Issue(context.Background(), "sess-1", []string{"hub:read"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != 3600 {
		t.Fatalf("unexpected ttl: %d", ttl)
	}

	sub, granted, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "sess-1" {
		t.Fatalf("unexpected subject: %s", sub)
	}
	if len(granted) != 1 || granted[0] != "hub:read" {
		t.Fatalf("unexpected roles: %v", granted)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	issuer := security.NewJWTIssuer([]byte("portal-secret"), time.Hour)
	other := security.NewJWTIssuer([]byte("other-secret"), time.Hour)

	token, _, err := issuer.Issue(context.Background(), "sess-1", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, _, err := other.Verify(token); err == nil {
		t.Fatalf("expected verification failure")
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := security.NewJWTIssuer([]byte("portal-secret"), -time.Minute)

	token, _, err := issuer.Issue(context.Background(), "sess-1", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, _, err := issuer.Verify(token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}
