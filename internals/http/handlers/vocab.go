package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ritikapurwa08/free-knowledge/internals/cache"
	"github.com/ritikapurwa08/free-knowledge/internals/config"
	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

// MarkWord records the caller's progress on a word. The first transition
// into "mastered" grants the mastery XP bonus exactly once.
func MarkWord(db *sql.DB, cfg *config.Config, lb *cache.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		var req struct {
			WordID string `json:"wordId"`
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("failed to decode JSON: %v", err), http.StatusBadRequest)
			return
		}
		if req.WordID == "" {
			http.Error(w, "wordId is required", http.StatusBadRequest)
			return
		}
		if req.Status == "" {
			req.Status = types.StatusMastered
		}
		if req.Status != types.StatusLearning && req.Status != types.StatusMastered {
			http.Error(w, fmt.Sprintf("invalid status %q", req.Status), http.StatusBadRequest)
			return
		}

		granted, err := database.MarkWord(db, userID, req.WordID, req.Status, cfg.MasteryXp)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		if granted {
			user, err := database.RetrieveUser(db, userID)
			if err == nil {
				lb.UpdateScore(r.Context(), userID, user.TotalXp)
			}
		}

		data := map[string]bool{"xpGranted": granted}
		response.WriteResponse(w, response.CreateResponse(data, http.StatusOK, "Word progress saved"))
	}
}

// GetKnownWords lists the caller's mastered word ids. Anonymous callers get
// an empty list, never an error.
func GetKnownWords(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			response.WriteResponse(w, response.CreateResponse([]string{}, http.StatusOK, "Known words retrieved successfully"))
			return
		}

		wordIds, err := database.FetchMasteredWordIds(db, userID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}
		if wordIds == nil {
			wordIds = []string{}
		}

		response.WriteResponse(w, response.CreateResponse(wordIds, http.StatusOK, "Known words retrieved successfully"))
	}
}

// GetWords pages through the word table by step: up to limit words with
// step >= start. The flashcard UI reads fixed sets of 50 on top of this.
func GetWords(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := strconv.Atoi(r.URL.Query().Get("start"))
		if err != nil || start < 1 {
			start = 1
		}
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit < 1 || limit > 200 {
			limit = 50
		}

		words, err := database.FetchWordRange(db, start, limit)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}
		if words == nil {
			words = []types.Word{}
		}

		response.WriteResponse(w, response.CreateResponse(words, http.StatusOK, "Words retrieved successfully"))
	}
}
