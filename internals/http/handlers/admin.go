package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

var (
	errNotAuthenticated = errors.New("not logged in")
	errNotAllowed       = errors.New("admin only")
)

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotAuthenticated) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusForbidden)
}

// requireAdmin resolves the caller and checks the isAdmin flag.
func requireAdmin(db *sql.DB, r *http.Request) error {
	userID, ok := callerID(r)
	if !ok {
		return errNotAuthenticated
	}

	user, err := database.RetrieveUser(db, userID)
	if err != nil {
		return errNotAuthenticated
	}
	if !user.IsAdmin {
		return errNotAllowed
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isAllowedAdminEmail checks the union of the configured default admins and
// the stored allow-list, case-insensitively.
func isAllowedAdminEmail(db *sql.DB, email string, defaults []string) (bool, error) {
	normalized := normalizeEmail(email)
	for _, d := range defaults {
		if normalizeEmail(d) == normalized {
			return true, nil
		}
	}
	return database.AdminEmailExists(db, normalized)
}

// mergeAdminEmails returns defaults plus stored emails, lowercased and
// deduped, preserving defaults-first order.
func mergeAdminEmails(defaults []string, stored []types.AdminEmail) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(defaults)+len(stored))

	add := func(email string) {
		normalized := normalizeEmail(email)
		if normalized == "" || seen[normalized] {
			return
		}
		seen[normalized] = true
		merged = append(merged, normalized)
	}

	for _, d := range defaults {
		add(d)
	}
	for _, s := range stored {
		add(s.Email)
	}
	return merged
}

// AddAdminEmail lets an existing admin extend the allow-list. Duplicate adds
// succeed with an "already exists" message instead of erroring.
func AddAdminEmail(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(db, r); err != nil {
			writeAuthError(w, err)
			return
		}

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			http.Error(w, "email is required", http.StatusBadRequest)
			return
		}

		userID, _ := callerID(r)
		inserted, err := database.InsertAdminEmail(db, normalizeEmail(req.Email), userID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		if !inserted {
			response.WriteResponse(w, response.CreateResponse(nil, http.StatusOK, "Already exists"))
			return
		}
		response.WriteResponse(w, response.CreateResponse(nil, http.StatusCreated, "Admin email added successfully"))
	}
}

// GetAdminEmails returns the full allow-list (defaults plus stored rows).
func GetAdminEmails(db *sql.DB, defaults []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(db, r); err != nil {
			writeAuthError(w, err)
			return
		}

		stored, err := database.FetchAdminEmails(db)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		merged := mergeAdminEmails(defaults, stored)
		response.WriteResponse(w, response.CreateResponse(merged, http.StatusOK, "Admin emails retrieved successfully"))
	}
}

// SeedWords bulk-imports the vocabulary dataset. Words whose step already
// exists are skipped, so the seed can be re-run safely.
func SeedWords(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(db, r); err != nil {
			writeAuthError(w, err)
			return
		}

		var words []types.Word
		if err := json.NewDecoder(r.Body).Decode(&words); err != nil {
			http.Error(w, fmt.Sprintf("failed to decode JSON: %v", err), http.StatusBadRequest)
			return
		}

		for i, word := range words {
			if word.Text == "" {
				http.Error(w, fmt.Sprintf("word %d: missing 'text'", i+1), http.StatusBadRequest)
				return
			}
			if word.Step < 1 {
				http.Error(w, fmt.Sprintf("word %d: 'step' must be a positive integer", i+1), http.StatusBadRequest)
				return
			}
		}

		inserted, err := database.InsertWords(db, words)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		data := map[string]int{"inserted": inserted, "skipped": len(words) - inserted}
		response.WriteResponse(w, response.CreateResponse(data, http.StatusCreated, "Words seeded successfully"))
	}
}
