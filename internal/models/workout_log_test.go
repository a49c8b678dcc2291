package models

import (
	"errors"
	"testing"
	"time"
)

func TestWorkoutLogs(t *testing.T) {
	db := testDB(t)
	u := seedUser(t, db, "log@example.com")
	other := seedUser(t, db, "nolog@example.com")
	plan, err := CreateWorkoutPlan(db, u.ID, WorkoutPlanInput{Name: "Base"})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	t.Run("log against own plan", func(t *testing.T) {
		l, err := CreateWorkoutLog(db, u.ID, WorkoutLogInput{PlanID: &plan.ID, Date: "2026-03-02", DurationMin: intPtr(45)})
		if err != nil {
			t.Fatalf("create log: %v", err)
		}
		if l.PlanName == nil || *l.PlanName != "Base" {
			t.Errorf("plan name = %v, want Base", l.PlanName)
		}
	})

	t.Run("date defaults to today", func(t *testing.T) {
		l, err := CreateWorkoutLog(db, u.ID, WorkoutLogInput{Notes: "carrera"})
		if err != nil {
			t.Fatalf("create log: %v", err)
		}
		if l.Date != Today() {
			t.Errorf("date = %q, want %q", l.Date, Today())
		}
	})

	t.Run("foreign plan rejected", func(t *testing.T) {
		_, err := CreateWorkoutLog(db, other.ID, WorkoutLogInput{PlanID: &plan.ID})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		logs, err := ListWorkoutLogs(db, u.ID, 0)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(logs) != 2 || logs[0].Date < logs[1].Date {
			t.Errorf("logs = %+v", logs)
		}
	})
}

func TestWeeklyStreaks(t *testing.T) {
	db := testDB(t)
	u := seedUser(t, db, "streak@example.com")
	if _, err := UpsertPreferences(db, u.ID, Preferences{PreferredWorkoutDays: 2}); err != nil {
		t.Fatal(err)
	}

	// Wednesday; the current week starts Monday 2026-03-09.
	now := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	for _, d := range []string{"2026-03-02", "2026-03-04", "2026-03-04", "2026-03-10"} {
		if _, err := CreateWorkoutLog(db, u.ID, WorkoutLogInput{Date: d}); err != nil {
			t.Fatal(err)
		}
	}

	streaks, err := WeeklyStreaks(db, u.ID, 3, now)
	if err != nil {
		t.Fatalf("weekly streaks: %v", err)
	}
	if len(streaks) != 3 {
		t.Fatalf("weeks = %d, want 3", len(streaks))
	}

	want := []struct {
		start   string
		trained int
		status  string
	}{
		{"2026-02-23", 0, "missed"},
		{"2026-03-02", 2, "complete"},
		{"2026-03-09", 1, "partial"},
	}
	for i, w := range want {
		s := streaks[i]
		if s.WeekStart != w.start || s.TrainedDays != w.trained || s.Status != w.status {
			t.Errorf("week %d = %+v, want start %s trained %d status %s", i, s, w.start, w.trained, w.status)
		}
		if s.TargetDays != 2 {
			t.Errorf("week %d target = %d, want 2", i, s.TargetDays)
		}
	}
}

func TestInteractions(t *testing.T) {
	db := testDB(t)
	u := seedUser(t, db, "chat@example.com")

	for i, msg := range []string{"hola", "quiero una rutina", "gracias"} {
		if _, err := LogInteraction(db, u.ID, msg, "greeting", 0.9, "respuesta"); err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
	}

	got, err := ListInteractions(db, u.ID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Message != "quiero una rutina" || got[1].Message != "gracias" {
		t.Errorf("order = %q, %q", got[0].Message, got[1].Message)
	}

	n, err := DeleteInteractionsBefore(db, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted = %d, want 3", n)
	}
}
