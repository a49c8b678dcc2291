package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Exercise represents a movement in the shared catalog.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

const exerciseColumns = `id, name, muscle_group, equipment, difficulty, description`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func scanExercise(row *sql.Row) (*Exercise, error) {
	e := &Exercise{}
	err := row.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment, &e.Difficulty, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// FindExercise looks an exercise up by name, ignoring case and accents: an
// exact match wins, otherwise the shortest name containing the search text.
func FindExercise(db *sql.DB, name string) (*Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	e, err := scanExercise(db.QueryRow(
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE instr(fold(name), fold(?1)) > 0
		 ORDER BY (fold(name) = fold(?1)) DESC, length(name)
		 LIMIT 1`, name))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("models: find exercise %q: %w", name, err)
	}
	return e, err
}

// ExerciseFilter narrows ListExercises. Empty fields match everything.
type ExerciseFilter struct {
	MuscleGroup string
	Query       string
}

// ListExercises returns catalog exercises ordered by name.
func ListExercises(db *sql.DB, f ExerciseFilter) ([]*Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE 1 = 1`
	var args []any
	if f.MuscleGroup != "" {
		query += ` AND muscle_group = ? COLLATE NOCASE`
		args = append(args, f.MuscleGroup)
	}
	if f.Query != "" {
		query += ` AND instr(fold(name), fold(?)) > 0`
		args = append(args, f.Query)
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("models: list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []*Exercise{}
	for rows.Next() {
		e := &Exercise{}
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment, &e.Difficulty, &e.Description); err != nil {
			return nil, fmt.Errorf("models: list exercises scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// resolveExercise returns the id for a plan entry: an explicit id must exist,
// otherwise the name is matched ignoring case and accents and created when
// missing.
func resolveExercise(q queryer, id int64, name string) (int64, error) {
	if id > 0 {
		var found int64
		err := q.QueryRow(`SELECT id FROM exercises WHERE id = ?`, id).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("models: exercise %d does not exist: %w", id, ErrInvalidInput)
		}
		if err != nil {
			return 0, fmt.Errorf("models: check exercise %d: %w", id, err)
		}
		return found, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("models: plan exercise needs an id or a name: %w", ErrInvalidInput)
	}

	var found int64
	err := q.QueryRow(`SELECT id FROM exercises WHERE fold(name) = fold(?) ORDER BY id LIMIT 1`, name).Scan(&found)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("models: look up exercise %q: %w", name, err)
	}

	res, err := q.Exec(`INSERT INTO exercises (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("models: create exercise %q: %w", name, err)
	}
	return res.LastInsertId()
}
