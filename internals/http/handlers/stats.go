package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/ritikapurwa08/free-knowledge/internals/cache"
	"github.com/ritikapurwa08/free-knowledge/internals/config"
	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

// buildLeaderboard projects ordered users into ranked entries. Rank is the
// 1-based position in the already-sorted input.
func buildLeaderboard(users []types.User, limit int) []types.LeaderboardEntry {
	if len(users) > limit {
		users = users[:limit]
	}

	entries := make([]types.LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = types.LeaderboardEntry{
			Rank:     i + 1,
			Username: user.Username,
			TotalXp:  user.TotalXp,
			ImageUrl: user.ImageUrl,
		}
	}
	return entries
}

// cacheCovers reports whether a cache holding cached members can serve a
// top-limit read over totalUsers users. The sorted set only fills as users
// earn XP, so after a deploy it may hold a handful of active users while the
// users table holds many; serving that short list would drop everyone else.
func cacheCovers(cached int64, totalUsers, limit int) bool {
	want := limit
	if totalUsers < want {
		want = totalUsers
	}
	return int(cached) >= want
}

// Leaderboard returns the top users by XP. The Redis sorted set is the fast
// path, taken only when it covers the full read; a cold or partially warm
// cache falls back to the users table, which is always correct.
func Leaderboard(db *sql.DB, cfg *config.Config, lb *cache.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totalUsers, err := database.CountUsers(db)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		var users []types.User

		if cached, err := lb.Size(r.Context()); err == nil && cacheCovers(cached, totalUsers, cfg.LeaderboardSize) {
			ids, err := lb.TopUserIds(r.Context(), cfg.LeaderboardSize)
			if err == nil && len(ids) > 0 {
				users, err = database.FetchUsersByIds(db, ids)
				if err != nil {
					http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
					return
				}
			}
		}

		if len(users) == 0 {
			var err error
			users, err = database.FetchTopUsers(db, cfg.LeaderboardSize)
			if err != nil {
				http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
				return
			}
		}

		entries := buildLeaderboard(users, cfg.LeaderboardSize)
		response.WriteResponse(w, response.CreateResponse(entries, http.StatusOK, "Leaderboard retrieved successfully"))
	}
}

// Progress returns the caller's mastered-word and attempted-quiz counts with
// the configured denominators. Percentages are computed by the client.
// Anonymous callers get a null payload.
func Progress(db *sql.DB, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			response.WriteResponse(w, response.CreateResponse(nil, http.StatusOK, "Not signed in"))
			return
		}

		knownWords, err := database.CountMasteredWords(db, userID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}
		attempted, err := database.CountResultsByUser(db, userID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		summary := types.ProgressSummary{
			KnownWords:     knownWords,
			TotalWords:     cfg.TotalWords,
			AttemptedTests: attempted,
			TotalTests:     cfg.TotalTests,
		}
		response.WriteResponse(w, response.CreateResponse(summary, http.StatusOK, "Progress retrieved successfully"))
	}
}
