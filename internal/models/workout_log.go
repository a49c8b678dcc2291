package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// WorkoutLog records a completed training session.
type WorkoutLog struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	PlanID         *int64    `json:"workout_plan_id"`
	PlanName       *string   `json:"workout_plan_name,omitempty"`
	Date           string    `json:"date"`
	DurationMin    *int      `json:"duration_min"`
	CaloriesBurned *int      `json:"calories_burned"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// WorkoutLogInput describes a log entry to create.
type WorkoutLogInput struct {
	PlanID         *int64 `json:"workout_plan_id"`
	Date           string `json:"date" validate:"omitempty,dateformat"`
	DurationMin    *int   `json:"duration_min" validate:"omitempty,gte=1,lte=1440"`
	CaloriesBurned *int   `json:"calories_burned" validate:"omitempty,gte=0,lte=20000"`
	Notes          string `json:"notes" validate:"max=2000"`
}

// CreateWorkoutLog inserts a log entry. A referenced plan must belong to the
// user, otherwise ErrNotFound is returned.
func CreateWorkoutLog(db *sql.DB, userID int64, in WorkoutLogInput) (*WorkoutLog, error) {
	if in.PlanID != nil {
		var owner int64
		err := db.QueryRow(`SELECT user_id FROM workout_plans WHERE id = ?`, *in.PlanID).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("models: check plan %d: %w", *in.PlanID, err)
		}
	}
	if in.Date == "" {
		in.Date = Today()
	}

	var id int64
	err := db.QueryRow(
		`INSERT INTO workout_logs (user_id, workout_plan_id, date, duration_min, calories_burned, notes)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		userID, in.PlanID, in.Date, in.DurationMin, in.CaloriesBurned, in.Notes,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("models: create workout log for user %d: %w", userID, err)
	}

	logs, err := queryWorkoutLogs(db, `WHERE l.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNotFound
	}
	return logs[0], nil
}

// InsertWorkoutLogs stores entries for userID in one transaction, so either
// every entry is written or none is. Each entry needs a date; plan references
// are ignored.
func InsertWorkoutLogs(db *sql.DB, userID int64, entries []WorkoutLogInput) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("models: insert workout logs begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO workout_logs (user_id, date, duration_min, calories_burned, notes)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("models: insert workout logs prepare: %w", err)
	}
	defer stmt.Close()

	for i, in := range entries {
		if in.Date == "" {
			return fmt.Errorf("models: workout log %d has no date: %w", i, ErrInvalidInput)
		}
		if _, err := stmt.Exec(userID, in.Date, in.DurationMin, in.CaloriesBurned, in.Notes); err != nil {
			return fmt.Errorf("models: insert workout log %s: %w", in.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("models: insert workout logs commit: %w", err)
	}
	return nil
}

// ListWorkoutLogs returns up to limit logs, newest first. limit <= 0 means all.
func ListWorkoutLogs(db *sql.DB, userID int64, limit int) ([]*WorkoutLog, error) {
	if limit <= 0 {
		limit = -1
	}
	return queryWorkoutLogs(db, `WHERE l.user_id = ? ORDER BY l.date DESC, l.id DESC LIMIT ?`, userID, limit)
}

func queryWorkoutLogs(db *sql.DB, where string, args ...any) ([]*WorkoutLog, error) {
	rows, err := db.Query(
		`SELECT l.id, l.user_id, l.workout_plan_id, p.name, l.date, l.duration_min, l.calories_burned, l.notes, l.created_at
		 FROM workout_logs l
		 LEFT JOIN workout_plans p ON p.id = l.workout_plan_id `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("models: query workout logs: %w", err)
	}
	defer rows.Close()

	logs := []*WorkoutLog{}
	for rows.Next() {
		l := &WorkoutLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.PlanID, &l.PlanName, &l.Date, &l.DurationMin,
			&l.CaloriesBurned, &l.Notes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("models: query workout logs scan: %w", err)
		}
		l.Date = normalizeDate(l.Date)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
