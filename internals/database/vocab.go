package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

// MarkWord upserts the (user, word) progress row to the target status. The
// first transition into "mastered" grants bonusXp inside the same
// transaction; re-mastering an already mastered word grants nothing.
// Returns whether the bonus was granted.
func MarkWord(db *sql.DB, userID int64, wordID, status string, bonusXp int) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var prior sql.NullString
	err = tx.QueryRow(
		"SELECT status FROM vocab_progress WHERE user_id = $1 AND word_id = $2 FOR UPDATE",
		userID, wordID).Scan(&prior)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}

	if prior.Valid {
		_, err = tx.Exec("UPDATE vocab_progress SET status = $1 WHERE user_id = $2 AND word_id = $3",
			status, userID, wordID)
	} else {
		_, err = tx.Exec("INSERT INTO vocab_progress (user_id, word_id, status) VALUES ($1, $2, $3)",
			userID, wordID, status)
	}
	if err != nil {
		return false, fmt.Errorf("failed to upsert vocab progress: %w", err)
	}

	granted := firstMastery(prior.String, prior.Valid, status)
	if granted {
		if _, err := GrantXp(tx, userID, bonusXp); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit vocab progress: %w", err)
	}
	return granted, nil
}

// firstMastery reports whether this write is the user's first transition into
// mastered for the word. The guard keeps the XP bonus idempotent.
func firstMastery(prior string, existed bool, target string) bool {
	if target != types.StatusMastered {
		return false
	}
	return !existed || prior != types.StatusMastered
}

func FetchMasteredWordIds(db *sql.DB, userID int64) ([]string, error) {
	rows, err := db.Query(
		"SELECT word_id FROM vocab_progress WHERE user_id = $1 AND status = $2",
		userID, types.StatusMastered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wordIds []string
	for rows.Next() {
		var wordID string
		if err := rows.Scan(&wordID); err != nil {
			return nil, err
		}
		wordIds = append(wordIds, wordID)
	}
	return wordIds, rows.Err()
}

func CountMasteredWords(db *sql.DB, userID int64) (int, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM vocab_progress WHERE user_id = $1 AND status = $2",
		userID, types.StatusMastered).Scan(&count)
	return count, err
}

// FetchWordRange returns up to limit words with step >= start, ordered by
// step. The vocabulary UI pages through fixed-size sets on top of this.
func FetchWordRange(db *sql.DB, start, limit int) ([]types.Word, error) {
	query := `
		SELECT word_id, step, text, definition, hindi_synonyms, english_synonyms, examples, difficulty, category
		FROM words WHERE step >= $1 ORDER BY step ASC LIMIT $2`

	rows, err := db.Query(query, start, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []types.Word
	for rows.Next() {
		var word types.Word
		var hindi, english, examples []byte
		if err := rows.Scan(&word.WordID, &word.Step, &word.Text, &word.Definition,
			&hindi, &english, &examples, &word.Difficulty, &word.Category); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(hindi, &word.HindiSynonyms); err != nil {
			return nil, fmt.Errorf("error unmarshalling hindi synonyms: %w", err)
		}
		if err := json.Unmarshal(english, &word.EnglishSynonyms); err != nil {
			return nil, fmt.Errorf("error unmarshalling english synonyms: %w", err)
		}
		if err := json.Unmarshal(examples, &word.Examples); err != nil {
			return nil, fmt.Errorf("error unmarshalling examples: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// InsertWords bulk-seeds the word table. Words whose step is already present
// are skipped, so re-running the seed is harmless.
func InsertWords(db *sql.DB, words []types.Word) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO words (word_id, step, text, definition, hindi_synonyms, english_synonyms, examples, difficulty, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (step) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, word := range words {
		hindi, err := json.Marshal(word.HindiSynonyms)
		if err != nil {
			return 0, err
		}
		english, err := json.Marshal(word.EnglishSynonyms)
		if err != nil {
			return 0, err
		}
		examples, err := json.Marshal(word.Examples)
		if err != nil {
			return 0, err
		}

		result, err := stmt.Exec(word.WordID, word.Step, word.Text, word.Definition,
			hindi, english, examples, word.Difficulty, word.Category)
		if err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", word.WordID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit word seed: %w", err)
	}
	return inserted, nil
}
