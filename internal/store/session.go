package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// SaveSession persists the bearer token and cached user profile. There is
// at most one session row.
func (db *DB) SaveSession(token string, user *models.User) error {
	userJSON := ""
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		userJSON = string(data)
	}

	_, err := db.conn.Exec(
		`INSERT INTO session (id, token, user_json, updated_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token, user_json = excluded.user_json, updated_at = excluded.updated_at`,
		token, userJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the persisted token and profile. A missing session is
// not an error; both return values are zero.
func (db *DB) LoadSession() (string, *models.User, error) {
	var token, userJSON string
	err := db.conn.QueryRow("SELECT token, user_json FROM session WHERE id = 1").Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user *models.User
	if userJSON != "" {
		user = &models.User{}
		if err := json.Unmarshal([]byte(userJSON), user); err != nil {
			return "", nil, fmt.Errorf("failed to unmarshal user: %w", err)
		}
	}

	return token, user, nil
}

// ClearSession removes the persisted credential and profile.
func (db *DB) ClearSession() error {
	if _, err := db.conn.Exec("DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
