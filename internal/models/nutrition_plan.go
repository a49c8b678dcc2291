package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// NutritionPlan is a user's diet plan made of ordered meals.
type NutritionPlan struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Goal          string    `json:"goal"`
	DailyCalories *int      `json:"daily_calories"`
	ProteinG      *float64  `json:"protein_g"`
	CarbsG        *float64  `json:"carbs_g"`
	FatG          *float64  `json:"fat_g"`
	AIGenerated   bool      `json:"ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Meals         []*Meal   `json:"meals,omitempty"`

	// Populated by list queries.
	MealCount int `json:"meal_count"`
}

// Meal is one meal of a nutrition plan.
type Meal struct {
	ID          int64    `json:"id"`
	PlanID      int64    `json:"nutrition_plan_id"`
	Name        string   `json:"name"`
	MealTime    string   `json:"meal_time"`
	Description string   `json:"description"`
	Calories    *int     `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	SortOrder   int      `json:"sort_order"`
}

// NutritionPlanInput describes a plan to create or the new state of a plan
// being updated. On update a nil Meals slice keeps the existing meals.
type NutritionPlanInput struct {
	Name          string      `json:"name" validate:"required,max=200"`
	Description   string      `json:"description" validate:"max=2000"`
	Goal          string      `json:"goal" validate:"omitempty,max=50"`
	DailyCalories *int        `json:"daily_calories" validate:"omitempty,gte=500,lte=10000"`
	ProteinG      *float64    `json:"protein_g" validate:"omitempty,gte=0"`
	CarbsG        *float64    `json:"carbs_g" validate:"omitempty,gte=0"`
	FatG          *float64    `json:"fat_g" validate:"omitempty,gte=0"`
	AIGenerated   bool        `json:"-"`
	Meals         []MealInput `json:"meals" validate:"dive"`
}

// MealInput describes one meal of a plan.
type MealInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	MealTime    string   `json:"meal_time" validate:"max=50"`
	Description string   `json:"description" validate:"max=2000"`
	Calories    *int     `json:"calories" validate:"omitempty,gte=0,lte=10000"`
	ProteinG    *float64 `json:"protein_g" validate:"omitempty,gte=0"`
	CarbsG      *float64 `json:"carbs_g" validate:"omitempty,gte=0"`
	FatG        *float64 `json:"fat_g" validate:"omitempty,gte=0"`
}

// CreateNutritionPlan inserts a plan and its meals in one transaction.
func CreateNutritionPlan(db *sql.DB, userID int64, in NutritionPlanInput) (*NutritionPlan, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("models: begin create nutrition plan: %w", err)
	}
	defer tx.Rollback()

	var planID int64
	err = tx.QueryRow(
		`INSERT INTO nutrition_plans (user_id, name, description, goal, daily_calories, protein_g, carbs_g, fat_g, ai_generated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID, in.Name, in.Description, in.Goal, in.DailyCalories, in.ProteinG, in.CarbsG, in.FatG, boolInt(in.AIGenerated),
	).Scan(&planID)
	if err != nil {
		return nil, fmt.Errorf("models: insert nutrition plan for user %d: %w", userID, err)
	}

	if err := insertMeals(tx, planID, in.Meals); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("models: commit nutrition plan: %w", err)
	}
	return GetNutritionPlan(db, userID, planID)
}

// UpdateNutritionPlan replaces the plan's fields and, when in.Meals is not
// nil, its meals, atomically. Plans of other users yield ErrNotFound.
func UpdateNutritionPlan(db *sql.DB, userID, planID int64, in NutritionPlanInput) (*NutritionPlan, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("models: begin update nutrition plan: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE nutrition_plans
		 SET name = ?, description = ?, goal = ?, daily_calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		in.Name, in.Description, in.Goal, in.DailyCalories, in.ProteinG, in.CarbsG, in.FatG, planID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("models: update nutrition plan %d: %w", planID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if in.Meals != nil {
		if _, err := tx.Exec(`DELETE FROM meals WHERE nutrition_plan_id = ?`, planID); err != nil {
			return nil, fmt.Errorf("models: clear meals for plan %d: %w", planID, err)
		}
		if err := insertMeals(tx, planID, in.Meals); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("models: commit nutrition plan %d: %w", planID, err)
	}
	return GetNutritionPlan(db, userID, planID)
}

func insertMeals(tx *sql.Tx, planID int64, meals []MealInput) error {
	for i, m := range meals {
		_, err := tx.Exec(
			`INSERT INTO meals (nutrition_plan_id, name, meal_time, description, calories, protein_g, carbs_g, fat_g, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			planID, m.Name, m.MealTime, m.Description, m.Calories, m.ProteinG, m.CarbsG, m.FatG, i,
		)
		if err != nil {
			return fmt.Errorf("models: insert meal %q: %w", m.Name, err)
		}
	}
	return nil
}

// GetNutritionPlan returns a plan with its meals in order. Plans owned by
// another user yield ErrNotFound.
func GetNutritionPlan(db *sql.DB, userID, planID int64) (*NutritionPlan, error) {
	p := &NutritionPlan{}
	err := db.QueryRow(
		`SELECT id, user_id, name, description, goal, daily_calories, protein_g, carbs_g, fat_g, ai_generated, created_at, updated_at
		 FROM nutrition_plans WHERE id = ? AND user_id = ?`, planID, userID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Goal, &p.DailyCalories, &p.ProteinG, &p.CarbsG, &p.FatG,
		&p.AIGenerated, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("models: get nutrition plan %d: %w", planID, err)
	}

	rows, err := db.Query(
		`SELECT id, nutrition_plan_id, name, meal_time, description, calories, protein_g, carbs_g, fat_g, sort_order
		 FROM meals WHERE nutrition_plan_id = ? ORDER BY sort_order, id`, planID)
	if err != nil {
		return nil, fmt.Errorf("models: list meals for plan %d: %w", planID, err)
	}
	defer rows.Close()

	p.Meals = []*Meal{}
	for rows.Next() {
		m := &Meal{}
		if err := rows.Scan(&m.ID, &m.PlanID, &m.Name, &m.MealTime, &m.Description, &m.Calories,
			&m.ProteinG, &m.CarbsG, &m.FatG, &m.SortOrder); err != nil {
			return nil, fmt.Errorf("models: list meals scan: %w", err)
		}
		p.Meals = append(p.Meals, m)
	}
	p.MealCount = len(p.Meals)
	return p, rows.Err()
}

// ListNutritionPlans returns the user's plans (without meals), newest first.
func ListNutritionPlans(db *sql.DB, userID int64) ([]*NutritionPlan, error) {
	rows, err := db.Query(
		`SELECT p.id, p.user_id, p.name, p.description, p.goal, p.daily_calories, p.protein_g, p.carbs_g, p.fat_g,
		        p.ai_generated, p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM meals m WHERE m.nutrition_plan_id = p.id)
		 FROM nutrition_plans p WHERE p.user_id = ?
		 ORDER BY p.created_at DESC, p.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("models: list nutrition plans for user %d: %w", userID, err)
	}
	defer rows.Close()

	plans := []*NutritionPlan{}
	for rows.Next() {
		p := &NutritionPlan{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Goal, &p.DailyCalories, &p.ProteinG,
			&p.CarbsG, &p.FatG, &p.AIGenerated, &p.CreatedAt, &p.UpdatedAt, &p.MealCount); err != nil {
			return nil, fmt.Errorf("models: list nutrition plans scan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
