package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func InsertNewQuiz(db *sql.DB, quiz *types.Quiz) error {
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions to JSON: %w", err)
	}

	query := `
		INSERT INTO quizzes (title, subject, topic, questions, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = db.QueryRow(query, quiz.Title, quiz.Subject, quiz.Topic, questionsJSON, quiz.CreatedBy).
		Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert new quiz: %w", err)
	}
	return nil
}

// quizFilterQuery builds the WHERE clause for quiz listing using the most
// specific filter available: subject+topic, then subject alone, then none.
func quizFilterQuery(subject, topic string) (string, []any) {
	base := `SELECT id, title, subject, topic, questions, created_by, created_at FROM quizzes`

	switch {
	case subject != "" && topic != "":
		return base + ` WHERE subject = $1 AND topic = $2 ORDER BY created_at DESC`, []any{subject, topic}
	case subject != "":
		return base + ` WHERE subject = $1 ORDER BY created_at DESC`, []any{subject}
	default:
		return base + ` ORDER BY created_at DESC`, nil
	}
}

func FetchQuizzes(db *sql.DB, subject, topic string) ([]types.Quiz, error) {
	query, args := quizFilterQuery(subject, topic)
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []types.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *quiz)
	}
	return quizzes, rows.Err()
}

func FetchQuizById(db *sql.DB, quizID int64) (*types.Quiz, error) {
	query := `SELECT id, title, subject, topic, questions, created_by, created_at FROM quizzes WHERE id = $1`
	rows, err := db.Query(query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("no quiz found with id %d: %w", quizID, ErrNotFound)
	}
	return scanQuiz(rows)
}

func scanQuiz(rows *sql.Rows) (*types.Quiz, error) {
	var quiz types.Quiz
	var questionsJSON []byte
	if err := rows.Scan(&quiz.ID, &quiz.Title, &quiz.Subject, &quiz.Topic, &questionsJSON,
		&quiz.CreatedBy, &quiz.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("error unmarshalling questions: %w", err)
	}
	return &quiz, nil
}

func DeleteQuizById(db *sql.DB, quizID int64) error {
	result, err := db.Exec("DELETE FROM quizzes WHERE id = $1", quizID)
	if err != nil {
		return fmt.Errorf("failed to delete the Quiz: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no Quiz found for the ID %d: %w", quizID, ErrNotFound)
	}
	return nil
}

func CountQuizzes(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM quizzes").Scan(&count)
	return count, err
}
