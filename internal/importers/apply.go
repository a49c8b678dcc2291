package importers

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/sasfit/sasback/internal/models"
)

// maxNotes matches the workout log notes limit.
const maxNotes = 2000

// Result summarizes an import.
type Result struct {
	Format   Format `json:"format"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"` // dates that already had a log
}

// Apply records each parsed workout as a workout log for userID in a single
// transaction. Dates that already have a log are skipped, so re-importing the
// same file is a no-op.
func Apply(db *sql.DB, userID int64, pf *ParsedFile) (*Result, error) {
	existing, err := models.ListWorkoutLogs(db, userID, 0)
	if err != nil {
		return nil, err
	}
	logged := make(map[string]bool, len(existing))
	for _, l := range existing {
		logged[l.Date] = true
	}

	res := &Result{Format: pf.Format}
	var entries []models.WorkoutLogInput
	for _, pw := range pf.Workouts {
		if logged[pw.Date] {
			res.Skipped++
			continue
		}
		entries = append(entries, models.WorkoutLogInput{
			Date:        pw.Date,
			DurationMin: pw.DurationMin,
			Notes:       summarize(pf.Format, pw),
		})
		logged[pw.Date] = true
	}

	if err := models.InsertWorkoutLogs(db, userID, entries); err != nil {
		return nil, fmt.Errorf("importers: apply %s: %w", pf.Format, err)
	}
	res.Imported = len(entries)
	return res, nil
}

var sourceNames = map[Format]string{
	FormatStrongCSV: "Strong",
	FormatHevyCSV:   "Hevy",
}

// summarize renders the log notes, e.g.
// "Importado de Strong: Pierna. Sentadilla, Prensa (8 series). Buenas sensaciones".
func summarize(f Format, pw ParsedWorkout) string {
	var parts []string
	if pw.Name != "" {
		parts = append(parts, pw.Name)
	}
	if len(pw.Exercises) > 0 {
		unit := "series"
		if pw.Sets == 1 {
			unit = "serie"
		}
		parts = append(parts, fmt.Sprintf("%s (%d %s)", strings.Join(pw.Exercises, ", "), pw.Sets, unit))
	}
	if pw.Notes != "" {
		parts = append(parts, pw.Notes)
	}

	s := "Importado de " + sourceNames[f]
	if len(parts) > 0 {
		s += ": " + strings.Join(parts, ". ")
	}
	if r := []rune(s); len(r) > maxNotes {
		s = string(r[:maxNotes])
	}
	return s
}
