package models

import (
	"database/sql"
	"fmt"
	"time"
)

// WeeklyStreak is one week's training adherence for a user.
type WeeklyStreak struct {
	WeekStart   string `json:"week_start"` // Monday (YYYY-MM-DD)
	WeekEnd     string `json:"week_end"`   // Sunday (YYYY-MM-DD)
	TargetDays  int    `json:"target_days"`
	TrainedDays int    `json:"trained_days"`
	Status      string `json:"status"`
}

// status classifies a week as "complete", "partial", "missed", or "upcoming"
// for weeks that have not started.
func (ws *WeeklyStreak) status(today string) string {
	switch {
	case ws.WeekStart > today:
		return "upcoming"
	case ws.TrainedDays >= ws.TargetDays:
		return "complete"
	case ws.TrainedDays > 0:
		return "partial"
	default:
		return "missed"
	}
}

// WeeklyStreaks returns adherence for the last `weeks` weeks, oldest first.
// The target is the user's preferred workout days per week; a day counts as
// trained when at least one workout log exists for it. The current week is
// included even though it may be incomplete.
func WeeklyStreaks(db *sql.DB, userID int64, weeks int, now time.Time) ([]*WeeklyStreak, error) {
	if weeks <= 0 {
		weeks = 8
	}

	prefs, err := GetPreferences(db, userID)
	if err != nil {
		return nil, err
	}

	weekday := now.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	monday := now.AddDate(0, 0, -int(weekday-time.Monday))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
	startMonday := monday.AddDate(0, 0, -(weeks-1)*7)

	streaks := make([]*WeeklyStreak, weeks)
	for i := range streaks {
		weekStart := startMonday.AddDate(0, 0, i*7)
		streaks[i] = &WeeklyStreak{
			WeekStart:  weekStart.Format(DateLayout),
			WeekEnd:    weekStart.AddDate(0, 0, 6).Format(DateLayout),
			TargetDays: prefs.PreferredWorkoutDays,
		}
	}

	rows, err := db.Query(
		`SELECT DISTINCT date(date) FROM workout_logs
		 WHERE user_id = ? AND date(date) >= date(?) AND date(date) <= date(?)`,
		userID, startMonday.Format(DateLayout), monday.AddDate(0, 0, 6).Format(DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("models: weekly streaks for user %d: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("models: scan streak day: %w", err)
		}
		d, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			continue
		}
		idx := int(d.Sub(startMonday).Hours()/24) / 7
		if idx < 0 || idx >= weeks {
			continue
		}
		streaks[idx].TrainedDays++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("models: iterate streak days: %w", err)
	}

	today := now.Format(DateLayout)
	for _, ws := range streaks {
		ws.Status = ws.status(today)
	}
	return streaks, nil
}
