package database

import (
	"database/sql"
	"testing"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func TestFirstMastery(t *testing.T) {
	tests := []struct {
		name    string
		prior   string
		existed bool
		target  string
		want    bool
	}{
		{"new row mastered", "", false, types.StatusMastered, true},
		{"new row learning", "", false, types.StatusLearning, false},
		{"learning to mastered", types.StatusLearning, true, types.StatusMastered, true},
		{"already mastered", types.StatusMastered, true, types.StatusMastered, false},
		{"mastered back to learning", types.StatusMastered, true, types.StatusLearning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstMastery(tt.prior, tt.existed, tt.target); got != tt.want {
				t.Errorf("firstMastery(%q, %v, %q) = %v, want %v", tt.prior, tt.existed, tt.target, got, tt.want)
			}
		})
	}
}

func TestGrantAmount(t *testing.T) {
	if got := grantAmount(10, 7); got != 17 {
		t.Errorf("grantAmount(10, 7) = %d, want 17", got)
	}
	if got := grantAmount(10, 0); got != 10 {
		t.Errorf("a zero-score attempt still grants the base amount, got %d", got)
	}

	// after a run of attempts the total is the starting XP plus the sum of
	// base+score per attempt
	total := int64(25)
	for _, score := range []int{7, 0, 10} {
		total += int64(grantAmount(10, score))
	}
	if total != 72 {
		t.Errorf("accumulated total = %d, want 72", total)
	}
}

func TestQuizFilterQuery(t *testing.T) {
	query, args := quizFilterQuery("English", "Nouns")
	if len(args) != 2 || args[0] != "English" || args[1] != "Nouns" {
		t.Errorf("subject+topic filter args = %v, want [English Nouns]", args)
	}

	query, args = quizFilterQuery("English", "")
	if len(args) != 1 || args[0] != "English" {
		t.Errorf("subject filter args = %v, want [English]", args)
	}

	query, args = quizFilterQuery("", "")
	if len(args) != 0 {
		t.Errorf("empty filter args = %v, want none", args)
	}
	if query == "" {
		t.Error("empty filter produced empty query")
	}

	// topic alone must not filter: subject is the leading index column
	_, args = quizFilterQuery("", "Nouns")
	if len(args) != 0 {
		t.Errorf("topic-only filter args = %v, want none", args)
	}
}

func TestQuizLabels(t *testing.T) {
	title, subject, topic := quizLabels(
		sql.NullString{String: "Set 1", Valid: true},
		sql.NullString{String: "English", Valid: true},
		sql.NullString{String: "Nouns", Valid: true},
	)
	if title != "Set 1" || subject != "English" || topic != "Nouns" {
		t.Errorf("resolved quiz labels = %q/%q/%q", title, subject, topic)
	}

	title, subject, topic = quizLabels(sql.NullString{}, sql.NullString{}, sql.NullString{})
	if title != "Unknown Quiz" || subject != "Other" || topic != "Other" {
		t.Errorf("placeholder labels = %q/%q/%q, want Unknown Quiz/Other/Other", title, subject, topic)
	}
}
