package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Admin@Example.COM "); got != "admin@example.com" {
		t.Errorf("normalizeEmail = %q", got)
	}
}

func TestMergeAdminEmails(t *testing.T) {
	defaults := []string{"Owner@Example.com"}
	stored := []types.AdminEmail{
		{Email: "second@example.com"},
		{Email: "owner@example.com"}, // duplicate of the default, different casing
		{Email: "third@example.com"},
	}

	merged := mergeAdminEmails(defaults, stored)

	want := []string{"owner@example.com", "second@example.com", "third@example.com"}
	if len(merged) != len(want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i], want[i])
		}
	}
}

func TestAddAdminEmailUnauthenticated(t *testing.T) {
	// nil db: rejection must happen before any storage access
	handler := AddAdminEmail(nil)

	body := `{"email":"new@example.com"}`
	r := httptest.NewRequest("POST", "/api/admin/emails", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
