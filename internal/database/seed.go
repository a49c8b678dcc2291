package database

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed-exercises.json
var seedExercises []byte

// SeedExercise is one entry of the embedded exercise catalog.
type SeedExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

// SeedCatalog returns the parsed embedded exercise catalog.
func SeedCatalog() ([]SeedExercise, error) {
	var exercises []SeedExercise
	if err := json.Unmarshal(seedExercises, &exercises); err != nil {
		return nil, fmt.Errorf("database: parse seed catalog: %w", err)
	}
	return exercises, nil
}

// SeedExercises inserts catalog exercises that are not present yet and
// returns how many rows were added. Existing rows (matched by name) are left
// untouched, so running it on every startup is safe.
func SeedExercises(db *sql.DB) (int64, error) {
	exercises, err := SeedCatalog()
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("database: seed begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO exercises (name, muscle_group, equipment, difficulty, description)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("database: seed prepare: %w", err)
	}
	defer stmt.Close()

	var added int64
	for _, e := range exercises {
		res, err := stmt.Exec(e.Name, e.MuscleGroup, e.Equipment, e.Difficulty, e.Description)
		if err != nil {
			return 0, fmt.Errorf("database: seed exercise %q: %w", e.Name, err)
		}
		n, _ := res.RowsAffected()
		added += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("database: seed commit: %w", err)
	}
	return added, nil
}
