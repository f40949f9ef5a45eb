package cache

import (
	"context"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:xp"

// Leaderboard keeps user XP in a Redis sorted set so the top-N read doesn't
// scan the users table on every request. Redis is optional: a nil
// *Leaderboard disables the cache and callers fall back to SQL.
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(addr string) *Leaderboard {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable (%v), leaderboard cache disabled", err)
		return nil
	}

	log.Println("Successfully connected to Redis")
	return &Leaderboard{client: client}
}

// UpdateScore records the user's current XP total. ZAdd overwrites the
// member's score, so callers pass the new total, not the delta.
func (lb *Leaderboard) UpdateScore(ctx context.Context, userID int64, totalXp int64) {
	if lb == nil {
		return
	}
	err := lb.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(totalXp),
		Member: strconv.FormatInt(userID, 10),
	}).Err()
	if err != nil {
		// cache refresh only; the SQL fallback stays correct
		log.Printf("leaderboard cache update failed for user %d: %v", userID, err)
	}
}

// Size returns how many users the cached leaderboard currently holds.
func (lb *Leaderboard) Size(ctx context.Context) (int64, error) {
	if lb == nil {
		return 0, redis.Nil
	}
	return lb.client.ZCard(ctx, leaderboardKey).Result()
}

// TopUserIds returns up to limit user ids ordered by XP descending.
func (lb *Leaderboard) TopUserIds(ctx context.Context, limit int) ([]int64, error) {
	if lb == nil {
		return nil, redis.Nil
	}

	members, err := lb.client.ZRevRange(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
