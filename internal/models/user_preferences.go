package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default preference values.
const (
	DefaultWorkoutDays     = 3
	DefaultWorkoutDuration = 60
	DefaultLanguage        = "es"
)

// Preferences represents a user's training and diet preferences.
type Preferences struct {
	UserID               int64     `json:"user_id"`
	PreferredWorkoutDays int       `json:"preferred_workout_days"`
	WorkoutDurationMin   int       `json:"workout_duration_min"`
	DietaryRestrictions  []string  `json:"dietary_restrictions"`
	Equipment            []string  `json:"equipment"`
	Language             string    `json:"language"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// GetPreferences retrieves preferences for a user. If none exist, returns defaults.
func GetPreferences(db *sql.DB, userID int64) (*Preferences, error) {
	p := &Preferences{UserID: userID}
	var restrictions, equipment string
	err := db.QueryRow(
		`SELECT preferred_workout_days, workout_duration_min, dietary_restrictions, equipment, language, updated_at
		 FROM user_preferences WHERE user_id = ?`, userID,
	).Scan(&p.PreferredWorkoutDays, &p.WorkoutDurationMin, &restrictions, &equipment, &p.Language, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &Preferences{
			UserID:               userID,
			PreferredWorkoutDays: DefaultWorkoutDays,
			WorkoutDurationMin:   DefaultWorkoutDuration,
			DietaryRestrictions:  []string{},
			Equipment:            []string{},
			Language:             DefaultLanguage,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("models: get preferences for user %d: %w", userID, err)
	}
	p.DietaryRestrictions = splitList(restrictions)
	p.Equipment = splitList(equipment)
	return p, nil
}

// UpsertPreferences creates or replaces a user's preferences.
func UpsertPreferences(db *sql.DB, userID int64, p Preferences) (*Preferences, error) {
	if p.PreferredWorkoutDays < 1 || p.PreferredWorkoutDays > 7 {
		return nil, fmt.Errorf("models: preferred workout days %d: %w", p.PreferredWorkoutDays, ErrInvalidInput)
	}
	if p.WorkoutDurationMin <= 0 {
		p.WorkoutDurationMin = DefaultWorkoutDuration
	}
	if p.Language == "" {
		p.Language = DefaultLanguage
	}

	_, err := db.Exec(`
		INSERT INTO user_preferences (user_id, preferred_workout_days, workout_duration_min, dietary_restrictions, equipment, language)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferred_workout_days = excluded.preferred_workout_days,
			workout_duration_min   = excluded.workout_duration_min,
			dietary_restrictions   = excluded.dietary_restrictions,
			equipment              = excluded.equipment,
			language               = excluded.language,
			updated_at             = CURRENT_TIMESTAMP`,
		userID, p.PreferredWorkoutDays, p.WorkoutDurationMin,
		joinList(p.DietaryRestrictions), joinList(p.Equipment), p.Language,
	)
	if err != nil {
		return nil, fmt.Errorf("models: upsert preferences for user %d: %w", userID, err)
	}
	return GetPreferences(db, userID)
}

// splitList decodes a comma-separated column into a non-nil slice.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinList(items []string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	return strings.Join(clean, ",")
}
