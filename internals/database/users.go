package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

const userColumns = `id, username, email, password, image_url, bio, total_xp, streak, last_login, is_admin, created_at`

func scanUser(row *sql.Row) (*types.User, error) {
	var user types.User
	err := row.Scan(&user.Id, &user.Username, &user.Email, &user.Password, &user.ImageUrl,
		&user.Bio, &user.TotalXp, &user.Streak, &user.LastLogin, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func InsertNewUser(db *sql.DB, user *types.User) (int64, error) {
	query := `
		INSERT INTO users (username, email, password, image_url, last_login)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`
	err := db.QueryRow(query, user.Username, user.Email, user.Password, user.ImageUrl).Scan(&user.Id)
	if err != nil {
		return -1, err
	}
	return user.Id, nil
}

// RetrieveUser looks a user up by email/username (string) or by id (int64).
func RetrieveUser(db *sql.DB, identifier any) (*types.User, error) {
	switch v := identifier.(type) {
	case string:
		query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $1 LIMIT 1`
		return scanUser(db.QueryRow(query, v))
	case int, int64:
		query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
		return scanUser(db.QueryRow(query, v))
	default:
		return nil, fmt.Errorf("unsupported identifier type: %T", identifier)
	}
}

func UpdateUsername(db *sql.DB, userID int64, newUsername string) error {
	return execForOneUser(db, "UPDATE users SET username = $1 WHERE id = $2", newUsername, userID)
}

func UpdateUserBio(db *sql.DB, userID int64, newBio string) error {
	return execForOneUser(db, "UPDATE users SET bio = $1 WHERE id = $2", newBio, userID)
}

func UpdateUserImage(db *sql.DB, userID int64, url string) error {
	return execForOneUser(db, "UPDATE users SET image_url = $1 WHERE id = $2", url, userID)
}

func SetAdmin(db *sql.DB, userID int64, isAdmin bool) error {
	return execForOneUser(db, "UPDATE users SET is_admin = $1 WHERE id = $2", isAdmin, userID)
}

func UpdateLoginStreak(db *sql.DB, userID int64, streak int, lastLogin time.Time) error {
	return execForOneUser(db, "UPDATE users SET streak = $1, last_login = $2 WHERE id = $3", streak, lastLogin, userID)
}

func execForOneUser(db *sql.DB, query string, args ...any) error {
	result, err := db.Exec(query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no user found: %w", ErrNotFound)
	}
	return nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx, so XP grants can run
// inside the result/vocab transactions.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// GrantXp adds amount to the user's XP atomically and returns the new total.
// An atomic increment is used instead of read-then-patch so two concurrent
// grants can't lose an update.
func GrantXp(q queryRower, userID int64, amount int) (int64, error) {
	var newTotal int64
	err := q.QueryRow("UPDATE users SET total_xp = total_xp + $1 WHERE id = $2 RETURNING total_xp", amount, userID).Scan(&newTotal)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to grant xp: %w", err)
	}
	return newTotal, nil
}

// FetchTopUsers returns users ordered by XP for the leaderboard. User id is
// the tie-break so ranking is deterministic across runs.
func FetchTopUsers(db *sql.DB, limit int) ([]types.User, error) {
	query := `SELECT id, username, image_url, total_xp FROM users ORDER BY total_xp DESC, id ASC LIMIT $1`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.Id, &user.Username, &user.ImageUrl, &user.TotalXp); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func CountUsers(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// FetchUsersByIds hydrates leaderboard rows from a list of ids, preserving
// the order of the input slice.
func FetchUsersByIds(db *sql.DB, ids []int64) ([]types.User, error) {
	byID := make(map[int64]types.User, len(ids))
	for _, id := range ids {
		user, err := RetrieveUser(db, id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		byID[id] = *user
	}

	users := make([]types.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}
