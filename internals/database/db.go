package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a referenced row does not exist. Handlers
// translate it to a null payload for reads.
var ErrNotFound = errors.New("not found")

func ConnectToDatabase(connectionString string) *sql.DB {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		panic(err)
	}

	err = db.Ping()
	if err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Successfully connected to Postgres")
	return db
}

// EnsureSchema creates every table and index the app needs. Uniqueness that
// the original relied on read-check-then-write for (admin emails, per-user
// word progress, word steps) is enforced with real constraints here.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			bio TEXT,
			total_xp BIGINT NOT NULL DEFAULT 0,
			streak INT NOT NULL DEFAULT 0,
			last_login TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_admin BOOL NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			subject TEXT NOT NULL,
			topic TEXT NOT NULL,
			questions JSONB NOT NULL,
			created_by INT REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS quizzes_by_subject ON quizzes (subject);`,
		`CREATE INDEX IF NOT EXISTS quizzes_by_subject_topic ON quizzes (subject, topic);`,
		`CREATE TABLE IF NOT EXISTS quiz_results (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			quiz_id TEXT NOT NULL,
			score INT NOT NULL CHECK (score >= 0),
			max_score INT NOT NULL CHECK (max_score >= score),
			answers JSONB NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS quiz_results_by_user ON quiz_results (user_id, completed_at DESC);`,
		`CREATE TABLE IF NOT EXISTS vocab_progress (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			word_id TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('learning', 'mastered')),
			UNIQUE (user_id, word_id)
		);`,
		`CREATE INDEX IF NOT EXISTS vocab_progress_by_user ON vocab_progress (user_id);`,
		`CREATE TABLE IF NOT EXISTS admin_emails (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			added_by INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS words (
			id SERIAL PRIMARY KEY,
			word_id TEXT NOT NULL,
			step INT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			definition TEXT NOT NULL,
			hindi_synonyms JSONB NOT NULL DEFAULT '[]',
			english_synonyms JSONB NOT NULL DEFAULT '[]',
			examples JSONB NOT NULL DEFAULT '[]',
			difficulty TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'word'
		);`,
		`CREATE INDEX IF NOT EXISTS words_by_step ON words (step);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}

	return nil
}
