package database

import (
	"database/sql"
	"fmt"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

// grantAmount is the XP awarded for one attempt: the flat participation
// amount plus the score.
func grantAmount(baseXp, score int) int {
	return baseXp + score
}

// InsertResultAndGrantXp records one quiz attempt and grants the submitting
// user baseXp + score XP. Both writes happen in one transaction so a crash
// can't leave a result without its XP.
func InsertResultAndGrantXp(db *sql.DB, result *types.QuizResult, baseXp int) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO quiz_results (user_id, quiz_id, score, max_score, answers)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, completed_at`

	err = tx.QueryRow(query, result.UserID, result.QuizID, result.Score, result.MaxScore, result.Answers).
		Scan(&result.ID, &result.CompletedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quiz result: %w", err)
	}

	newTotal, err := GrantXp(tx, result.UserID, grantAmount(baseXp, result.Score))
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit result: %w", err)
	}
	return newTotal, nil
}

func FetchResultById(db *sql.DB, resultID int64) (*types.QuizResult, error) {
	query := `SELECT id, user_id, quiz_id, score, max_score, answers, completed_at
		FROM quiz_results WHERE id = $1`

	var result types.QuizResult
	err := db.QueryRow(query, resultID).Scan(&result.ID, &result.UserID, &result.QuizID,
		&result.Score, &result.MaxScore, &result.Answers, &result.CompletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// FetchHistory returns the user's attempts newest first, joined with quiz
// labels. quiz_id is free text (file-based quizzes never hit the quizzes
// table), so the join is a LEFT JOIN and misses fall back to placeholders.
func FetchHistory(db *sql.DB, userID int64) ([]types.HistoryEntry, error) {
	query := `
		SELECT r.id, r.user_id, r.quiz_id, r.score, r.max_score, r.answers, r.completed_at,
		       q.title, q.subject, q.topic
		FROM quiz_results r
		LEFT JOIN quizzes q ON q.id::text = r.quiz_id
		WHERE r.user_id = $1
		ORDER BY r.completed_at DESC`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var entry types.HistoryEntry
		var title, subject, topic sql.NullString
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.QuizID, &entry.Score, &entry.MaxScore,
			&entry.Answers, &entry.CompletedAt, &title, &subject, &topic); err != nil {
			return nil, err
		}
		entry.QuizTitle, entry.QuizSubject, entry.QuizTopic = quizLabels(title, subject, topic)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func quizLabels(title, subject, topic sql.NullString) (string, string, string) {
	if !title.Valid {
		return "Unknown Quiz", "Other", "Other"
	}
	return title.String, subject.String, topic.String
}

func CountResultsByUser(db *sql.DB, userID int64) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM quiz_results WHERE user_id = $1", userID).Scan(&count)
	return count, err
}
