package database

import (
	"database/sql"
	"fmt"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

// InsertAdminEmail adds an email to the allow-list. Returns false when the
// email was already present (the caller reports "already exists" instead of
// erroring). The unique constraint makes this safe under concurrent calls.
func InsertAdminEmail(db *sql.DB, email string, addedBy int64) (bool, error) {
	result, err := db.Exec(`
		INSERT INTO admin_emails (email, added_by)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING`, email, addedBy)
	if err != nil {
		return false, fmt.Errorf("failed to insert admin email: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func FetchAdminEmails(db *sql.DB) ([]types.AdminEmail, error) {
	rows, err := db.Query("SELECT id, email, added_by, added_at FROM admin_emails ORDER BY added_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []types.AdminEmail
	for rows.Next() {
		var entry types.AdminEmail
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.AddedBy, &entry.AddedAt); err != nil {
			return nil, err
		}
		emails = append(emails, entry)
	}
	return emails, rows.Err()
}

func AdminEmailExists(db *sql.DB, email string) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM admin_emails WHERE email = $1)", email).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return exists, nil
}
