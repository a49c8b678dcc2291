package models

import (
	"database/sql"
	"fmt"
	"time"
)

// ProgressEntry is one body-measurement record.
type ProgressEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Date       string    `json:"date"`
	WeightKg   *float64  `json:"weight_kg"`
	BodyFatPct *float64  `json:"body_fat_pct"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateProgress records a measurement. At least one of weight or body fat
// must be present. An empty date means today.
func CreateProgress(db *sql.DB, userID int64, date string, weightKg, bodyFatPct *float64, notes string) (*ProgressEntry, error) {
	if weightKg == nil && bodyFatPct == nil {
		return nil, fmt.Errorf("models: progress needs weight or body fat: %w", ErrInvalidInput)
	}
	if date == "" {
		date = Today()
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("models: progress date %q: %w", date, ErrInvalidInput)
	}

	var id int64
	err := db.QueryRow(
		`INSERT INTO progress_tracking (user_id, date, weight_kg, body_fat_pct, notes)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID, date, weightKg, bodyFatPct, notes,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("models: create progress for user %d: %w", userID, err)
	}

	p := &ProgressEntry{}
	err = db.QueryRow(
		`SELECT id, user_id, date, weight_kg, body_fat_pct, notes, created_at
		 FROM progress_tracking WHERE id = ?`, id,
	).Scan(&p.ID, &p.UserID, &p.Date, &p.WeightKg, &p.BodyFatPct, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("models: get progress %d: %w", id, err)
	}
	p.Date = normalizeDate(p.Date)
	return p, nil
}

// ListProgress returns up to limit entries, newest first. limit <= 0 means all.
func ListProgress(db *sql.DB, userID int64, limit int) ([]*ProgressEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(
		`SELECT id, user_id, date, weight_kg, body_fat_pct, notes, created_at
		 FROM progress_tracking WHERE user_id = ?
		 ORDER BY date DESC, id DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("models: list progress for user %d: %w", userID, err)
	}
	defer rows.Close()

	entries := []*ProgressEntry{}
	for rows.Next() {
		p := &ProgressEntry{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Date, &p.WeightKg, &p.BodyFatPct, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("models: list progress scan: %w", err)
		}
		p.Date = normalizeDate(p.Date)
		entries = append(entries, p)
	}
	return entries, rows.Err()
}
