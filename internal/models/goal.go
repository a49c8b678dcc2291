package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ValidGoalTypes lists the goal categories the assistant and API accept.
var ValidGoalTypes = []string{"weight_loss", "muscle_gain", "maintenance", "endurance", "strength"}

// Goal is a fitness target a user is working toward.
type Goal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GoalType    string    `json:"goal_type"`
	TargetValue *float64  `json:"target_value"`
	TargetDate  *string   `json:"target_date"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateGoal inserts a new active goal for the user.
func CreateGoal(db *sql.DB, userID int64, goalType string, targetValue *float64, targetDate *string, description string) (*Goal, error) {
	if !contains(ValidGoalTypes, goalType) {
		return nil, fmt.Errorf("models: goal type %q: %w", goalType, ErrInvalidInput)
	}
	if targetDate != nil {
		if _, err := time.Parse(DateLayout, *targetDate); err != nil {
			return nil, fmt.Errorf("models: target date %q: %w", *targetDate, ErrInvalidInput)
		}
	}

	var id int64
	err := db.QueryRow(
		`INSERT INTO fitness_goals (user_id, goal_type, target_value, target_date, description)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID, goalType, targetValue, targetDate, description,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("models: create goal for user %d: %w", userID, err)
	}
	return getGoal(db, id)
}

func getGoal(db *sql.DB, id int64) (*Goal, error) {
	g := &Goal{}
	err := db.QueryRow(
		`SELECT id, user_id, goal_type, target_value, target_date, description, status, created_at
		 FROM fitness_goals WHERE id = ?`, id,
	).Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetValue, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("models: get goal %d: %w", id, err)
	}
	return g, nil
}

// ListGoals returns the user's goals, newest first.
func ListGoals(db *sql.DB, userID int64) ([]*Goal, error) {
	rows, err := db.Query(
		`SELECT id, user_id, goal_type, target_value, target_date, description, status, created_at
		 FROM fitness_goals WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("models: list goals for user %d: %w", userID, err)
	}
	defer rows.Close()

	goals := []*Goal{}
	for rows.Next() {
		g := &Goal{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetValue, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("models: list goals scan: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
