package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
	"github.com/ritikapurwa08/free-knowledge/internals/utils/tokens"
)

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestOptionalAuthStripsSpoofedIdentity(t *testing.T) {
	var seenUserID string
	handler := OptionalAuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = r.Header.Get("userID")
	})

	r := httptest.NewRequest("GET", "/api/quiz/history", nil)
	r.Header.Set("userID", "42") // forged; no token present
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seenUserID != "" {
		t.Errorf("spoofed userID header survived: %q", seenUserID)
	}
}

func TestAuthMiddlewareLargeUserID(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	// JSON decodes the sub claim as float64; a seven-digit id must not come
	// back in exponent notation
	user := &types.User{Id: 1000000, Username: "asha"}
	accessToken, _, err := tokens.GenerateTokens(user)
	if err != nil {
		t.Fatal(err)
	}

	var seenUserID string
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = r.Header.Get("userID")
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seenUserID != "1000000" {
		t.Errorf("userID = %q, want 1000000", seenUserID)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	user := &types.User{Id: 7, Username: "asha"}
	accessToken, _, err := tokens.GenerateTokens(user)
	if err != nil {
		t.Fatal(err)
	}

	var seenUserID, seenUsername string
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = r.Header.Get("userID")
		seenUsername = r.Header.Get("username")
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seenUserID != "7" {
		t.Errorf("userID = %q, want 7", seenUserID)
	}
	if seenUsername != "asha" {
		t.Errorf("username = %q, want asha", seenUsername)
	}
}
