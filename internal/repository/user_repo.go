package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bloglist/internal/models"
)

// ErrDuplicateUsername is returned when registration collides with an
// existing username.
var ErrDuplicateUsername = errors.New("username already exists")

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (name, username, password_hash) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, name, username, password_hash FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID. A UNIQUE violation on the
// username column maps to ErrDuplicateUsername.
func (r *UserSQLite) Create(name, username, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, name, username, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByUsernameSQL, username).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}
