package auth_test

import (
	"testing"

	"github.com/academic-hub/csv-portal/internal/auth"
	"github.com/academic-hub/csv-portal/internal/store"
)

func TestStateOf(t *testing.T) {
	cases := []struct {
		status int
		want   auth.State
	}{
		{0, auth.StateNoAttempt},
		{400, auth.StateNoAttempt},
		{200, auth.StateAuthenticated},
		{401, auth.StateDenied},
		{500, auth.StateDenied},
	}

	for _, c := range cases {
		sess := &store.Session{ID: "s1", AuthStatus: c.status}
		if got := auth.StateOf(sess); got != c.want {
			t.Fatalf("status %d: got %s, want %s", c.status, got, c.want)
		}
	}
}

func TestLoginURL(t *testing.T) {
	got := auth.LoginURL("https://auth.example.com", "abc-123")
	want := "https://auth.example.com?hub-id=abc-123"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDeniedMessage_CarriesCode(t *testing.T) {
	msg := auth.DeniedMessage(401)
	if want := "Error (401)"; len(msg) < len(want) || msg[:len(want)] != want {
		t.Fatalf("message must lead with the literal code: %s", msg)
	}
}
