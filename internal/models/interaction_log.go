package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Interaction is one chat exchange with the assistant.
type Interaction struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Message    string    `json:"message"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Response   string    `json:"response"`
	CreatedAt  time.Time `json:"created_at"`
}

// LogInteraction stores a chat exchange.
func LogInteraction(db *sql.DB, userID int64, message, intent string, confidence float64, response string) (int64, error) {
	var id int64
	err := db.QueryRow(
		`INSERT INTO ai_interaction_logs (user_id, message, intent, confidence, response)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID, message, intent, confidence, response,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("models: log interaction for user %d: %w", userID, err)
	}
	return id, nil
}

// ListInteractions returns the user's most recent exchanges in chronological
// order, so a client can render them top to bottom.
func ListInteractions(db *sql.DB, userID int64, limit int) ([]*Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, user_id, message, intent, confidence, response, created_at FROM (
		     SELECT * FROM ai_interaction_logs WHERE user_id = ?
		     ORDER BY created_at DESC, id DESC LIMIT ?
		 ) ORDER BY created_at, id`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("models: list interactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := []*Interaction{}
	for rows.Next() {
		i := &Interaction{}
		if err := rows.Scan(&i.ID, &i.UserID, &i.Message, &i.Intent, &i.Confidence, &i.Response, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("models: list interactions scan: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// DeleteInteractionsBefore prunes exchanges older than cutoff and returns how
// many rows were removed.
func DeleteInteractionsBefore(db *sql.DB, cutoff time.Time) (int64, error) {
	result, err := db.Exec(
		`DELETE FROM ai_interaction_logs WHERE created_at < ?`,
		cutoff.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("models: delete interactions before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return result.RowsAffected()
}
