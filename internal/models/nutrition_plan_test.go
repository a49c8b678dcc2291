package models

import (
	"errors"
	"testing"
)

func TestNutritionPlan(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "diet@example.com")
	other := seedUser(t, db, "intruder@example.com")

	plan, err := CreateNutritionPlan(db, owner.ID, NutritionPlanInput{
		Name:          "Volumen limpio",
		Goal:          "muscle_gain",
		DailyCalories: intPtr(2800),
		ProteinG:      floatPtr(160),
		Meals: []MealInput{
			{Name: "Desayuno", MealTime: "08:00", Calories: intPtr(700)},
			{Name: "Comida", MealTime: "14:00", Calories: intPtr(1000)},
			{Name: "Cena", MealTime: "21:00", Calories: intPtr(800)},
		},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	t.Run("meals keep order", func(t *testing.T) {
		if plan.MealCount != 3 {
			t.Fatalf("meal count = %d, want 3", plan.MealCount)
		}
		want := []string{"Desayuno", "Comida", "Cena"}
		for i, name := range want {
			if plan.Meals[i].Name != name {
				t.Errorf("meal %d = %q, want %q", i, plan.Meals[i].Name, name)
			}
		}
		if plan.DailyCalories == nil || *plan.DailyCalories != 2800 {
			t.Errorf("daily calories = %v", plan.DailyCalories)
		}
		if plan.CarbsG != nil {
			t.Errorf("carbs = %v, want nil", *plan.CarbsG)
		}
	})

	t.Run("update keeps meals when omitted", func(t *testing.T) {
		got, err := UpdateNutritionPlan(db, owner.ID, plan.ID, NutritionPlanInput{Name: "Volumen", Goal: "muscle_gain"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Name != "Volumen" || got.MealCount != 3 {
			t.Errorf("plan = %+v", got)
		}
		if got.DailyCalories != nil {
			t.Errorf("daily calories = %v, want cleared", *got.DailyCalories)
		}
	})

	t.Run("update replaces meals", func(t *testing.T) {
		got, err := UpdateNutritionPlan(db, owner.ID, plan.ID, NutritionPlanInput{
			Name:  "Volumen",
			Meals: []MealInput{{Name: "Batido"}},
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.MealCount != 1 || got.Meals[0].Name != "Batido" {
			t.Errorf("meals = %+v", got.Meals)
		}
	})

	t.Run("update clears meals with empty slice", func(t *testing.T) {
		got, err := UpdateNutritionPlan(db, owner.ID, plan.ID, NutritionPlanInput{Name: "Vacío", Meals: []MealInput{}})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.MealCount != 0 {
			t.Errorf("meal count = %d, want 0", got.MealCount)
		}
	})

	t.Run("other user gets not found", func(t *testing.T) {
		if _, err := GetNutritionPlan(db, other.ID, plan.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("get err = %v, want ErrNotFound", err)
		}
		_, err := UpdateNutritionPlan(db, other.ID, plan.ID, NutritionPlanInput{Name: "Robado"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("update err = %v, want ErrNotFound", err)
		}
		got, _ := GetNutritionPlan(db, owner.ID, plan.ID)
		if got.Name != "Vacío" {
			t.Errorf("name changed to %q by another user", got.Name)
		}
	})

	t.Run("list", func(t *testing.T) {
		plans, err := ListNutritionPlans(db, owner.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(plans) != 1 {
			t.Errorf("plans = %d, want 1", len(plans))
		}
	})
}
