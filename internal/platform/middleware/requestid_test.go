package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func serveRequestID(t *testing.T, incoming string, set bool) (captured string, header string) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if set {
		req.Header.Set(chimiddleware.RequestIDHeader, incoming)
	}
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))
	h.ServeHTTP(rec, req)
	return captured, rec.Header().Get(chimiddleware.RequestIDHeader)
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	captured, header := serveRequestID(t, "", false)

	if captured == "" {
		t.Fatalf("expected generated request ID")
	}
	if header != captured {
		t.Fatalf("expected response header %q, got %q", captured, header)
	}
	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a valid UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
}

func TestRequestIDGeneratesDistinctIDs(t *testing.T) {
	first, _ := serveRequestID(t, "", false)
	second, _ := serveRequestID(t, "", false)
	if first == second {
		t.Fatalf("expected distinct request IDs, got %q twice", first)
	}
}

func TestRequestIDHandlesIncomingHeader(t *testing.T) {
	tests := []struct {
		name    string
		inputID string
		wantNew bool
	}{
		{name: "alphanumeric preserved", inputID: "abc123-XYZ"},
		{name: "UUID preserved", inputID: "550e8400-e29b-41d4-a716-446655440000"},
		{name: "spaces and punctuation preserved", inputID: "trace id:abc-123_def.456!@#$%"},
		{name: "exactly max length preserved", inputID: strings.Repeat("x", 128)},
		{name: "too long replaced", inputID: strings.Repeat("a", 129), wantNew: true},
		{name: "newline replaced", inputID: "valid\ninjected-line", wantNew: true},
		{name: "carriage return replaced", inputID: "valid\rinjected", wantNew: true},
		{name: "tab replaced", inputID: "valid\ttab", wantNew: true},
		{name: "null byte replaced", inputID: "valid\x00null", wantNew: true},
		{name: "DEL replaced", inputID: "valid\x7Fdel", wantNew: true},
		{name: "non-ASCII replaced", inputID: "välid", wantNew: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			captured, header := serveRequestID(t, tc.inputID, true)
			if header != captured {
				t.Fatalf("expected header to echo %q, got %q", captured, header)
			}
			if !tc.wantNew {
				if captured != tc.inputID {
					t.Fatalf("expected %q, got %q", tc.inputID, captured)
				}
				return
			}
			if captured == tc.inputID {
				t.Fatalf("expected new UUID, but got original: %q", captured)
			}
			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("expected valid UUID, got %q: %v", captured, err)
			}
		})
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"", false},
		{"a", true},
		{" leading space", true},
		{"hello\x1fworld", false},
		{"hello\x80world", false},
		{strings.Repeat("a", 128), true},
		{strings.Repeat("a", 129), false},
	}

	for _, tc := range tests {
		if got := isValidRequestID(tc.id); got != tc.valid {
			t.Errorf("isValidRequestID(%q) = %v, want %v", tc.id, got, tc.valid)
		}
	}
}
