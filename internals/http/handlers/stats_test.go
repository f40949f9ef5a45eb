package handlers

import (
	"fmt"
	"testing"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func sortedUsers(n int) []types.User {
	users := make([]types.User, n)
	for i := range users {
		users[i] = types.User{
			Id:       int64(i + 1),
			Username: fmt.Sprintf("user%d", i+1),
			TotalXp:  int64(1000 - i*10),
		}
	}
	return users
}

func TestBuildLeaderboard(t *testing.T) {
	entries := buildLeaderboard(sortedUsers(3), 50)

	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3 when fewer users than the limit", len(entries))
	}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
	}
	if entries[0].TotalXp < entries[1].TotalXp {
		t.Error("leaderboard not descending by XP")
	}
}

func TestBuildLeaderboardTruncates(t *testing.T) {
	entries := buildLeaderboard(sortedUsers(60), 50)
	if len(entries) != 50 {
		t.Fatalf("len = %d, want 50", len(entries))
	}
	if entries[49].Rank != 50 {
		t.Errorf("last rank = %d, want 50", entries[49].Rank)
	}
}

func TestCacheCovers(t *testing.T) {
	tests := []struct {
		name       string
		cached     int64
		totalUsers int
		limit      int
		want       bool
	}{
		{"full cache", 50, 1000, 50, true},
		{"partially warm cache", 1, 1000, 50, false},
		{"empty cache", 0, 1000, 50, false},
		{"few users all cached", 10, 10, 50, true},
		{"few users cache behind", 9, 10, 50, false},
		{"no users", 0, 0, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheCovers(tt.cached, tt.totalUsers, tt.limit); got != tt.want {
				t.Errorf("cacheCovers(%d, %d, %d) = %v, want %v", tt.cached, tt.totalUsers, tt.limit, got, tt.want)
			}
		})
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	if entries := buildLeaderboard(nil, 50); len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}
