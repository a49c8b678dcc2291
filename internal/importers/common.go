// Package importers reads workout history exported by other training apps
// (Strong, Hevy) and records it as workout logs.
package importers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format identifies the source format of an import file.
type Format string

const (
	FormatStrongCSV Format = "strong_csv"
	FormatHevyCSV   Format = "hevy_csv"
)

// ErrUnknownFormat is returned when the file is neither a Strong nor a Hevy export.
var ErrUnknownFormat = errors.New("importers: unrecognized file format")

// ParsedFile is the unified output of every parser.
type ParsedFile struct {
	Format   Format
	Workouts []ParsedWorkout
}

// ParsedWorkout is one training day. Exercises keep first-seen order.
type ParsedWorkout struct {
	Date        string // YYYY-MM-DD
	Name        string
	DurationMin *int
	Exercises   []string
	Sets        int
	Notes       string
}

func (pw *ParsedWorkout) addSet(exercise string) {
	pw.Sets++
	for _, e := range pw.Exercises {
		if e == exercise {
			return
		}
	}
	pw.Exercises = append(pw.Exercises, exercise)
}

// Parse detects the format of data and parses it.
func Parse(data []byte) (*ParsedFile, error) {
	switch DetectFormat(data) {
	case FormatStrongCSV:
		return ParseStrongCSV(bytes.NewReader(trimBOM(data)))
	case FormatHevyCSV:
		return ParseHevyCSV(bytes.NewReader(trimBOM(data)))
	default:
		return nil, ErrUnknownFormat
	}
}

// DetectFormat identifies Strong vs Hevy CSV from the header row. It returns
// an empty Format when neither matches.
func DetectFormat(data []byte) Format {
	header := firstLineOf(bytes.TrimLeft(trimBOM(data), " \t\r\n"))
	switch {
	case containsAll(header, "Exercise Name", "Set Order", "Weight", "Reps"):
		return FormatStrongCSV
	case containsAll(header, "exercise_title", "set_index", "reps"):
		return FormatHevyCSV
	}
	return ""
}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

func firstLineOf(data []byte) string {
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return string(data[:i])
	}
	return string(data)
}

func containsAll(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// csvTable is a CSV body with a header index.
type csvTable struct {
	idx  map[string]int
	rows [][]string
}

func readCSV(r io.Reader, source string, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importers: read %s csv: %w", source, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("importers: %s csv has no data rows", source)
	}

	t := &csvTable{idx: make(map[string]int), rows: records[1:]}
	for i, col := range records[0] {
		t.idx[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := t.idx[col]; !ok {
			return nil, fmt.Errorf("importers: %s csv missing required column %q", source, col)
		}
	}
	return t, nil
}

// val safely gets a column value from a row.
func (t *csvTable) val(row []string, col string) string {
	i, ok := t.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2 Jan 2006, 15:04",
	"Jan 2, 2006, 15:04",
	"2006-01-02",
	"2006 Jan 2",
	"Jan 2, 2006",
	"01/02/2006",
	time.RFC3339,
}

// parseTime accepts the timestamp layouts seen in Strong and Hevy exports.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// workoutBook groups rows into workouts keyed by date, in first-seen order.
type workoutBook struct {
	byDate map[string]*ParsedWorkout
	order  []string
}

func newWorkoutBook() *workoutBook {
	return &workoutBook{byDate: make(map[string]*ParsedWorkout)}
}

func (b *workoutBook) get(date string) *ParsedWorkout {
	pw, ok := b.byDate[date]
	if !ok {
		pw = &ParsedWorkout{Date: date}
		b.byDate[date] = pw
		b.order = append(b.order, date)
	}
	return pw
}

func (b *workoutBook) workouts() []ParsedWorkout {
	out := make([]ParsedWorkout, 0, len(b.order))
	for _, date := range b.order {
		out = append(out, *b.byDate[date])
	}
	return out
}

func minutesPtr(d time.Duration) *int {
	m := int(d.Round(time.Minute) / time.Minute)
	if m <= 0 {
		return nil
	}
	if m > 1440 {
		m = 1440
	}
	return &m
}
