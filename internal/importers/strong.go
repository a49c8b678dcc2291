package importers

import (
	"io"
	"strings"
	"time"
)

// Strong CSV columns.
// Date,Workout Name,Duration,Exercise Name,Set Order,Weight,Reps,Distance,Seconds,Notes,Workout Notes,RPE
const (
	strongColDate         = "Date"
	strongColWorkoutName  = "Workout Name"
	strongColDuration     = "Duration"
	strongColExerciseName = "Exercise Name"
	strongColWorkoutNotes = "Workout Notes"
)

// ParseStrongCSV parses workout data from a Strong app CSV export.
func ParseStrongCSV(r io.Reader) (*ParsedFile, error) {
	t, err := readCSV(r, "strong", strongColDate, strongColExerciseName)
	if err != nil {
		return nil, err
	}

	book := newWorkoutBook()
	for _, row := range t.rows {
		ts, ok := parseTime(t.val(row, strongColDate))
		exercise := t.val(row, strongColExerciseName)
		if !ok || exercise == "" {
			continue
		}

		pw := book.get(ts.Format("2006-01-02"))
		if pw.Name == "" {
			pw.Name = t.val(row, strongColWorkoutName)
		}
		if pw.DurationMin == nil {
			if d, ok := parseStrongDuration(t.val(row, strongColDuration)); ok {
				pw.DurationMin = minutesPtr(d)
			}
		}
		if pw.Notes == "" {
			pw.Notes = t.val(row, strongColWorkoutNotes)
		}
		pw.addSet(exercise)
	}

	return &ParsedFile{Format: FormatStrongCSV, Workouts: book.workouts()}, nil
}

// parseStrongDuration reads Strong's "1h 5m" style durations. Plain numbers
// are taken as seconds.
func parseStrongDuration(s string) (time.Duration, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}
	if d, err := time.ParseDuration(s + "s"); err == nil {
		return d, true
	}
	return 0, false
}
