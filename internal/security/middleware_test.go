package security_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/academic-hub/csv-portal/internal/security"
)

func TestSessionAuthMiddleware_ContextInjection(t *testing.T) {
	issuer := security.NewJWTIssuer([]byte("portal-secret"), time.Hour)
	token, _, err := issuer.Issue(context.Background(), "sess-1", []string{"hub:read"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	mw := security.SessionAuthMiddleware(issuer)

	var gotID string
	var gotRoles []string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = security.SessionIDFrom(r.Context())
		gotRoles = security.RolesFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
	if gotID != "sess-1" {
		t.Fatalf("unexpected session id: %s", gotID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "hub:read" {
		t.Fatalf("unexpected roles: %v", gotRoles)
	}
}

func TestSessionAuthMiddleware_MissingToken(t *testing.T) {
	issuer := security.NewJWTIssuer([]byte("portal-secret"), time.Hour)
	mw := security.SessionAuthMiddleware(issuer)

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
}

func TestSessionAuthMiddleware_TestShortcut(t *testing.T) {
	security.SkipAuthForTest = true
	defer func() {
		security.SkipAuthForTest = false
	}()

	mw := security.SessionAuthMiddleware(nil)

	var gotID string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = security.SessionIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-ID", "sess-test")
	req.Header.Set("X-Roles", "hub:read")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
	if gotID != "sess-test" {
		t.Fatalf("unexpected session id: %s", gotID)
	}
}

func TestRequireCapability_Denied(t *testing.T) {
	mw := security.RequireCapability("hub:read")
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), security.CtxKeySessionID, "sess-1")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req.WithContext(ctx))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
}
