package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ValidFitnessLevels lists acceptable values for fitness_level.
var ValidFitnessLevels = []string{"beginner", "intermediate", "advanced"}

// Profile holds a user's body and training background. Unknown values are nil.
type Profile struct {
	UserID        int64     `json:"user_id"`
	Age           *int      `json:"age"`
	Gender        *string   `json:"gender"`
	HeightCm      *float64  `json:"height_cm"`
	WeightKg      *float64  `json:"weight_kg"`
	FitnessLevel  *string   `json:"fitness_level"`
	ActivityLevel *string   `json:"activity_level"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileUpdate carries the fields to change; nil fields keep their value.
type ProfileUpdate struct {
	Age           *int
	Gender        *string
	HeightCm      *float64
	WeightKg      *float64
	FitnessLevel  *string
	ActivityLevel *string
}

// GetProfile returns the user's profile. A user without a stored profile gets
// an empty one rather than ErrNotFound.
func GetProfile(db *sql.DB, userID int64) (*Profile, error) {
	p := &Profile{UserID: userID}
	err := db.QueryRow(
		`SELECT age, gender, height_cm, weight_kg, fitness_level, activity_level, updated_at
		 FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&p.Age, &p.Gender, &p.HeightCm, &p.WeightKg, &p.FitnessLevel, &p.ActivityLevel, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("models: get profile for user %d: %w", userID, err)
	}
	return p, nil
}

// UpsertProfile merges the non-nil fields of u into the user's profile.
func UpsertProfile(db *sql.DB, userID int64, u ProfileUpdate) (*Profile, error) {
	if u.FitnessLevel != nil && !contains(ValidFitnessLevels, *u.FitnessLevel) {
		return nil, fmt.Errorf("models: invalid fitness level %q: %w", *u.FitnessLevel, ErrInvalidInput)
	}

	_, err := db.Exec(`
		INSERT INTO user_profiles (user_id, age, gender, height_cm, weight_kg, fitness_level, activity_level)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			age            = COALESCE(excluded.age, age),
			gender         = COALESCE(excluded.gender, gender),
			height_cm      = COALESCE(excluded.height_cm, height_cm),
			weight_kg      = COALESCE(excluded.weight_kg, weight_kg),
			fitness_level  = COALESCE(excluded.fitness_level, fitness_level),
			activity_level = COALESCE(excluded.activity_level, activity_level),
			updated_at     = CURRENT_TIMESTAMP`,
		userID, u.Age, u.Gender, u.HeightCm, u.WeightKg, u.FitnessLevel, u.ActivityLevel,
	)
	if err != nil {
		return nil, fmt.Errorf("models: upsert profile for user %d: %w", userID, err)
	}
	return GetProfile(db, userID)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
