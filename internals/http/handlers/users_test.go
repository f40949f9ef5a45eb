package handlers

import (
	"testing"
	"time"
)

func TestRollStreak(t *testing.T) {
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastLogin time.Time
		now       time.Time
		current   int
		want      int
	}{
		{"same day keeps streak", base, base.Add(6 * time.Hour), 4, 4},
		{"first ever login", base, base.Add(time.Hour), 0, 1},
		{"next day extends", base, base.Add(24 * time.Hour), 4, 5},
		{"two day gap resets", base, base.Add(48 * time.Hour), 9, 1},
		{"week gap resets", base, base.Add(7 * 24 * time.Hour), 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rollStreak(tt.lastLogin, tt.now, tt.current); got != tt.want {
				t.Errorf("rollStreak = %d, want %d", got, tt.want)
			}
		})
	}
}
