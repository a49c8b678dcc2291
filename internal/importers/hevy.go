package importers

import (
	"io"
)

// Hevy CSV columns.
const (
	hevyColTitle         = "title"
	hevyColStartTime     = "start_time"
	hevyColEndTime       = "end_time"
	hevyColDescription   = "description"
	hevyColExerciseTitle = "exercise_title"
	hevyColSetType       = "set_type"
)

// ParseHevyCSV parses workout data from a Hevy app CSV export. Warmup sets
// are not counted.
func ParseHevyCSV(r io.Reader) (*ParsedFile, error) {
	t, err := readCSV(r, "hevy", hevyColStartTime, hevyColExerciseTitle)
	if err != nil {
		return nil, err
	}

	book := newWorkoutBook()
	for _, row := range t.rows {
		start, ok := parseTime(t.val(row, hevyColStartTime))
		exercise := t.val(row, hevyColExerciseTitle)
		if !ok || exercise == "" {
			continue
		}

		pw := book.get(start.Format("2006-01-02"))
		if pw.Name == "" {
			pw.Name = t.val(row, hevyColTitle)
		}
		if pw.DurationMin == nil {
			if end, ok := parseTime(t.val(row, hevyColEndTime)); ok && end.After(start) {
				pw.DurationMin = minutesPtr(end.Sub(start))
			}
		}
		if pw.Notes == "" {
			pw.Notes = t.val(row, hevyColDescription)
		}
		if t.val(row, hevyColSetType) == "warmup" {
			continue
		}
		pw.addSet(exercise)
	}

	return &ParsedFile{Format: FormatHevyCSV, Workouts: book.workouts()}, nil
}
