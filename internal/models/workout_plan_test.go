package models

import (
	"errors"
	"testing"
)

func samplePlanInput(t testing.TB) WorkoutPlanInput {
	t.Helper()
	return WorkoutPlanInput{
		Name:        "Fuerza 3 días",
		Goal:        "strength",
		Level:       "beginner",
		DaysPerWeek: 3,
		Sessions: []SessionInput{
			{Name: "Día A", DayOfWeek: intPtr(1), Exercises: []SessionExerciseInput{
				{Name: "Sentadilla con barra", Sets: 5, Reps: "5"},
				{Name: "Press de banca", Sets: 5, Reps: "5"},
				{Name: "Remo invertido casero", Reps: "8-10"},
			}},
			{Name: "Día B", Exercises: []SessionExerciseInput{
				{Name: "Dominadas", Sets: 3, Reps: "max", RestSeconds: 120},
				{Name: "Plancha", Sets: 3, Reps: "45s"},
			}},
		},
	}
}

func TestCreateWorkoutPlan(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	plan, err := CreateWorkoutPlan(db, owner.ID, samplePlanInput(t))
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	t.Run("sessions and exercises keep order", func(t *testing.T) {
		got, err := GetWorkoutPlan(db, owner.ID, plan.ID)
		if err != nil {
			t.Fatalf("get plan: %v", err)
		}
		if len(got.Sessions) != 2 {
			t.Fatalf("sessions = %d, want 2", len(got.Sessions))
		}
		if got.Sessions[0].Name != "Día A" || got.Sessions[1].Name != "Día B" {
			t.Errorf("session order = %q, %q", got.Sessions[0].Name, got.Sessions[1].Name)
		}
		wantA := []string{"Sentadilla con barra", "Press de banca", "Remo invertido casero"}
		if len(got.Sessions[0].Exercises) != len(wantA) {
			t.Fatalf("day A exercises = %d, want %d", len(got.Sessions[0].Exercises), len(wantA))
		}
		for i, name := range wantA {
			if got.Sessions[0].Exercises[i].ExerciseName != name {
				t.Errorf("exercise %d = %q, want %q", i, got.Sessions[0].Exercises[i].ExerciseName, name)
			}
		}
		if len(got.Sessions[1].Exercises) != 2 {
			t.Errorf("day B exercises = %d, want 2", len(got.Sessions[1].Exercises))
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		got, _ := GetWorkoutPlan(db, owner.ID, plan.ID)
		remo := got.Sessions[0].Exercises[2]
		if remo.Sets != 3 || remo.RestSeconds != 60 {
			t.Errorf("defaults = sets %d rest %d, want 3/60", remo.Sets, remo.RestSeconds)
		}
		if got.Sessions[1].Exercises[0].RestSeconds != 120 {
			t.Errorf("explicit rest not kept")
		}
	})

	t.Run("unknown exercise names are added to the catalog", func(t *testing.T) {
		e, err := FindExercise(db, "remo invertido casero")
		if err != nil {
			t.Fatalf("find exercise: %v", err)
		}
		if e.Name != "Remo invertido casero" {
			t.Errorf("name = %q", e.Name)
		}
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := GetWorkoutPlan(db, other.ID, plan.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
		if err := DeleteWorkoutPlan(db, other.ID, plan.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("delete err = %v, want ErrNotFound", err)
		}
	})

	t.Run("list counts sessions", func(t *testing.T) {
		plans, err := ListWorkoutPlans(db, owner.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(plans) != 1 || plans[0].SessionCount != 2 {
			t.Errorf("plans = %+v", plans)
		}
		others, _ := ListWorkoutPlans(db, other.ID)
		if len(others) != 0 {
			t.Errorf("other user sees %d plans", len(others))
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		if err := DeleteWorkoutPlan(db, owner.ID, plan.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		var n int
		db.QueryRow(`SELECT COUNT(*) FROM workout_sessions`).Scan(&n)
		if n != 0 {
			t.Errorf("sessions left = %d, want 0", n)
		}
	})
}

func TestCreateWorkoutPlanRollsBack(t *testing.T) {
	db := testDB(t)
	u := seedUser(t, db, "tx@example.com")

	in := WorkoutPlanInput{
		Name: "Roto",
		Sessions: []SessionInput{
			{Name: "Día 1", Exercises: []SessionExerciseInput{{Name: "Flexiones"}}},
			{Name: "Día 2", Exercises: []SessionExerciseInput{{ExerciseID: 99999}}},
		},
	}
	_, err := CreateWorkoutPlan(db, u.ID, in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	for _, table := range []string{"workout_plans", "workout_sessions", "workout_exercises"} {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s rows = %d, want 0 after rollback", table, n)
		}
	}
}

func TestListExercises(t *testing.T) {
	db := testDB(t)

	all, err := ListExercises(db, ExerciseFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("seeded catalog is empty")
	}

	chest, err := ListExercises(db, ExerciseFilter{MuscleGroup: "PECHO"})
	if err != nil {
		t.Fatalf("list chest: %v", err)
	}
	for _, e := range chest {
		if e.MuscleGroup != "pecho" {
			t.Errorf("muscle group = %q, want pecho", e.MuscleGroup)
		}
	}

	found, err := ListExercises(db, ExerciseFilter{Query: "banca"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) == 0 {
		t.Error("search for banca found nothing")
	}

	if _, err := FindExercise(db, "no existe este ejercicio"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExerciseLookupIgnoresAccents(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner@example.com")

	for search, want := range map[string]string{
		"jalon al pecho": "Jalón al pecho",
		"CURL DE BICEPS": "Curl de bíceps",
		"bicicleta":      "Bicicleta estática",
	} {
		e, err := FindExercise(db, search)
		if err != nil {
			t.Fatalf("find %q: %v", search, err)
		}
		if e.Name != want {
			t.Errorf("find %q = %q, want %q", search, e.Name, want)
		}
	}

	found, err := ListExercises(db, ExerciseFilter{Query: "jalon"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Jalón al pecho" {
		t.Errorf("search jalon = %+v", found)
	}

	before, _ := ListExercises(db, ExerciseFilter{})
	plan, err := CreateWorkoutPlan(db, owner.ID, WorkoutPlanInput{
		Name: "Espalda",
		Sessions: []SessionInput{{Name: "Tirón", Exercises: []SessionExerciseInput{
			{Name: "Jalon al pecho", Sets: 4, Reps: "10"},
		}}},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	after, _ := ListExercises(db, ExerciseFilter{})
	if len(after) != len(before) {
		t.Errorf("catalog grew from %d to %d, want the accented entry reused", len(before), len(after))
	}

	got, err := GetWorkoutPlan(db, owner.ID, plan.ID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if name := got.Sessions[0].Exercises[0].ExerciseName; name != "Jalón al pecho" {
		t.Errorf("exercise name = %q, want the catalog name", name)
	}
}
