package audit_test

import (
	"testing"

	"github.com/academic-hub/csv-portal/internal/audit"
)

func TestSign_Deterministic(t *testing.T) {
	l := audit.New(true, "secret")

	a := l.Sign([]byte(`{"event":"portal.token"}`))
	b := l.Sign([]byte(`{"event":"portal.token"}`))
	if a != b {
		t.Fatalf("signatures differ: %s vs %s", a, b)
	}

	c := l.Sign([]byte(`{"event":"csv.download"}`))
	if a == c {
		t.Fatalf("expected different signature for different payload")
	}
}

func TestWrite_DisabledIsNoop(t *testing.T) {
	l := audit.New(false, "")
	// must not panic or emit
	l.Write(map[string]any{"event": "session.create"})
}
