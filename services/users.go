package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"grana/models"
	"grana/security"

	"github.com/google/uuid"
)

// RegisterUser creates an account with a bcrypt-hashed password. Usernames
// are unique; a taken name returns ErrConflict.
func RegisterUser(db *sql.DB, username, name, password string) (*models.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if len(username) < 3 {
		return nil, fmt.Errorf("username needs at least 3 characters: %w", models.ErrInvalidArgument)
	}
	if name == "" {
		name = username
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidArgument)
	}

	var existing int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&existing); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("username %s is taken: %w", username, models.ErrConflict)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = db.Exec(`
		INSERT INTO users (id, username, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Username, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// AuthenticateUser checks credentials and returns the user on success.
// Unknown usernames and bad passwords both return ErrPermissionDenied so the
// response does not leak which one was wrong.
func AuthenticateUser(db *sql.DB, username, password string) (*models.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))

	var u models.User
	err := db.QueryRow(`
		SELECT id, username, name, password_hash, created_at
		FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invalid credentials: %w", models.ErrPermissionDenied)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !security.CheckPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrPermissionDenied)
	}
	return &u, nil
}

// GetUser loads a user by id.
func GetUser(db *sql.DB, id string) (*models.User, error) {
	var u models.User
	err := db.QueryRow(`
		SELECT id, username, name, password_hash, created_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}
