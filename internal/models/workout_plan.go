package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// WorkoutPlan is a user's training program: ordered sessions, each with an
// ordered list of exercises.
type WorkoutPlan struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Goal        string            `json:"goal"`
	Level       string            `json:"level"`
	DaysPerWeek int               `json:"days_per_week"`
	AIGenerated bool              `json:"ai_generated"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Sessions    []*WorkoutSession `json:"sessions,omitempty"`

	// Populated by list queries.
	SessionCount int `json:"session_count"`
}

// WorkoutSession is one training day within a plan.
type WorkoutSession struct {
	ID        int64              `json:"id"`
	PlanID    int64              `json:"workout_plan_id"`
	Name      string             `json:"name"`
	DayOfWeek *int               `json:"day_of_week"`
	SortOrder int                `json:"sort_order"`
	Exercises []*SessionExercise `json:"exercises"`
}

// SessionExercise is a prescribed exercise within a session.
type SessionExercise struct {
	ID           int64  `json:"id"`
	SessionID    int64  `json:"session_id"`
	ExerciseID   int64  `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	MuscleGroup  string `json:"muscle_group"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	RestSeconds  int    `json:"rest_seconds"`
	Notes        string `json:"notes"`
	SortOrder    int    `json:"sort_order"`
}

// WorkoutPlanInput describes a plan to create.
type WorkoutPlanInput struct {
	Name        string         `json:"name" validate:"required,max=200"`
	Description string         `json:"description" validate:"max=2000"`
	Goal        string         `json:"goal" validate:"omitempty,max=50"`
	Level       string         `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	DaysPerWeek int            `json:"days_per_week" validate:"gte=0,lte=7"`
	AIGenerated bool           `json:"-"`
	Sessions    []SessionInput `json:"sessions" validate:"dive"`
}

// SessionInput describes one session of a new plan.
type SessionInput struct {
	Name      string                 `json:"name" validate:"required,max=200"`
	DayOfWeek *int                   `json:"day_of_week" validate:"omitempty,gte=1,lte=7"`
	Exercises []SessionExerciseInput `json:"exercises" validate:"dive"`
}

// SessionExerciseInput references a catalog exercise by id, or by name when
// ExerciseID is zero.
type SessionExerciseInput struct {
	ExerciseID  int64  `json:"exercise_id"`
	Name        string `json:"name" validate:"required_without=ExerciseID,max=200"`
	Sets        int    `json:"sets" validate:"gte=0,lte=20"`
	Reps        string `json:"reps" validate:"max=50"`
	RestSeconds int    `json:"rest_seconds" validate:"gte=0,lte=600"`
	Notes       string `json:"notes" validate:"max=1000"`
}

// CreateWorkoutPlan inserts the plan with all its sessions and exercises in a
// single transaction; nothing is stored if any part fails.
func CreateWorkoutPlan(db *sql.DB, userID int64, in WorkoutPlanInput) (*WorkoutPlan, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("models: begin create workout plan: %w", err)
	}
	defer tx.Rollback()

	var planID int64
	err = tx.QueryRow(
		`INSERT INTO workout_plans (user_id, name, description, goal, level, days_per_week, ai_generated)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID, in.Name, in.Description, in.Goal, in.Level, in.DaysPerWeek, boolInt(in.AIGenerated),
	).Scan(&planID)
	if err != nil {
		return nil, fmt.Errorf("models: insert workout plan for user %d: %w", userID, err)
	}

	for i, s := range in.Sessions {
		var sessionID int64
		err := tx.QueryRow(
			`INSERT INTO workout_sessions (workout_plan_id, name, day_of_week, sort_order)
			 VALUES (?, ?, ?, ?) RETURNING id`,
			planID, s.Name, s.DayOfWeek, i,
		).Scan(&sessionID)
		if err != nil {
			return nil, fmt.Errorf("models: insert session %q: %w", s.Name, err)
		}

		for j, e := range s.Exercises {
			exerciseID, err := resolveExercise(tx, e.ExerciseID, e.Name)
			if err != nil {
				return nil, err
			}
			sets := e.Sets
			if sets <= 0 {
				sets = 3
			}
			rest := e.RestSeconds
			if rest <= 0 {
				rest = 60
			}
			_, err = tx.Exec(
				`INSERT INTO workout_exercises (session_id, exercise_id, sets, reps, rest_seconds, notes, sort_order)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				sessionID, exerciseID, sets, e.Reps, rest, e.Notes, j,
			)
			if err != nil {
				return nil, fmt.Errorf("models: insert exercise %d into session %d: %w", exerciseID, sessionID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("models: commit workout plan: %w", err)
	}
	return GetWorkoutPlan(db, userID, planID)
}

// GetWorkoutPlan returns a plan with its sessions and exercises in submitted
// order. A plan owned by another user is reported as ErrNotFound.
func GetWorkoutPlan(db *sql.DB, userID, planID int64) (*WorkoutPlan, error) {
	p := &WorkoutPlan{}
	err := db.QueryRow(
		`SELECT id, user_id, name, description, goal, level, days_per_week, ai_generated, created_at, updated_at
		 FROM workout_plans WHERE id = ? AND user_id = ?`, planID, userID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Goal, &p.Level, &p.DaysPerWeek, &p.AIGenerated, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("models: get workout plan %d: %w", planID, err)
	}

	sessions, err := listSessions(db, planID)
	if err != nil {
		return nil, err
	}
	p.Sessions = sessions
	p.SessionCount = len(sessions)
	return p, nil
}

func listSessions(db *sql.DB, planID int64) ([]*WorkoutSession, error) {
	rows, err := db.Query(
		`SELECT id, workout_plan_id, name, day_of_week, sort_order
		 FROM workout_sessions WHERE workout_plan_id = ?
		 ORDER BY sort_order, id`, planID)
	if err != nil {
		return nil, fmt.Errorf("models: list sessions for plan %d: %w", planID, err)
	}

	sessions := []*WorkoutSession{}
	byID := make(map[int64]*WorkoutSession)
	for rows.Next() {
		s := &WorkoutSession{Exercises: []*SessionExercise{}}
		if err := rows.Scan(&s.ID, &s.PlanID, &s.Name, &s.DayOfWeek, &s.SortOrder); err != nil {
			rows.Close()
			return nil, fmt.Errorf("models: list sessions scan: %w", err)
		}
		sessions = append(sessions, s)
		byID[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("models: list sessions: %w", err)
	}

	// The pool holds a single connection, so the session cursor is closed
	// before the exercise query runs.
	exRows, err := db.Query(
		`SELECT we.id, we.session_id, we.exercise_id, e.name, e.muscle_group,
		        we.sets, we.reps, we.rest_seconds, we.notes, we.sort_order
		 FROM workout_exercises we
		 JOIN workout_sessions ws ON ws.id = we.session_id
		 JOIN exercises e ON e.id = we.exercise_id
		 WHERE ws.workout_plan_id = ?
		 ORDER BY ws.sort_order, we.sort_order, we.id`, planID)
	if err != nil {
		return nil, fmt.Errorf("models: list session exercises for plan %d: %w", planID, err)
	}
	defer exRows.Close()

	for exRows.Next() {
		e := &SessionExercise{}
		if err := exRows.Scan(&e.ID, &e.SessionID, &e.ExerciseID, &e.ExerciseName, &e.MuscleGroup,
			&e.Sets, &e.Reps, &e.RestSeconds, &e.Notes, &e.SortOrder); err != nil {
			return nil, fmt.Errorf("models: list session exercises scan: %w", err)
		}
		if s, ok := byID[e.SessionID]; ok {
			s.Exercises = append(s.Exercises, e)
		}
	}
	return sessions, exRows.Err()
}

// ListWorkoutPlans returns the user's plans (without sessions), newest first.
func ListWorkoutPlans(db *sql.DB, userID int64) ([]*WorkoutPlan, error) {
	rows, err := db.Query(
		`SELECT p.id, p.user_id, p.name, p.description, p.goal, p.level, p.days_per_week, p.ai_generated,
		        p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM workout_sessions s WHERE s.workout_plan_id = p.id)
		 FROM workout_plans p WHERE p.user_id = ?
		 ORDER BY p.created_at DESC, p.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("models: list workout plans for user %d: %w", userID, err)
	}
	defer rows.Close()

	plans := []*WorkoutPlan{}
	for rows.Next() {
		p := &WorkoutPlan{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Goal, &p.Level, &p.DaysPerWeek,
			&p.AIGenerated, &p.CreatedAt, &p.UpdatedAt, &p.SessionCount); err != nil {
			return nil, fmt.Errorf("models: list workout plans scan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeleteWorkoutPlan removes a plan owned by the user (sessions cascade).
func DeleteWorkoutPlan(db *sql.DB, userID, planID int64) error {
	result, err := db.Exec(`DELETE FROM workout_plans WHERE id = ? AND user_id = ?`, planID, userID)
	if err != nil {
		return fmt.Errorf("models: delete workout plan %d: %w", planID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
