package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sasfit/sasback/internal/intent"
	"github.com/sasfit/sasback/internal/llm"
	"github.com/sasfit/sasback/internal/models"
)

// PlanRequest carries the structured hints for a generated plan. Zero fields
// fall back to the user's profile and preferences.
type PlanRequest struct {
	DaysPerWeek  int      `json:"days_per_week" validate:"gte=0,lte=7"`
	Goal         string   `json:"goal" validate:"omitempty,oneof=muscle_gain weight_loss maintenance endurance strength"`
	Level        string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationMin  int      `json:"duration_min" validate:"gte=0,lte=600"`
	Calories     int      `json:"calories" validate:"gte=0,lte=10000"`
	Restrictions []string `json:"restrictions" validate:"dive,oneof=vegetarian vegan gluten_free lactose_free keto"`
	Notes        string   `json:"notes" validate:"max=2000"`
}

// planRequestFrom maps classifier parameters onto a PlanRequest.
func planRequestFrom(res intent.Result) PlanRequest {
	var req PlanRequest
	req.DaysPerWeek, _ = res.Int("days")
	req.Goal, _ = res.String("goal")
	req.Level, _ = res.String("level")
	req.DurationMin, _ = res.Int("duration")
	req.Calories, _ = res.Int("calories")
	req.Restrictions = res.Strings("restrictions")
	return req
}

var goalLabels = map[string]string{
	"muscle_gain": "ganar masa muscular",
	"weight_loss": "perder peso",
	"maintenance": "mantener el peso",
	"endurance":   "mejorar la resistencia",
	"strength":    "ganar fuerza",
}

var levelLabels = map[string]string{
	"beginner":     "principiante",
	"intermediate": "intermedio",
	"advanced":     "avanzado",
}

var restrictionLabels = map[string]string{
	"vegetarian":   "vegetariana",
	"vegan":        "vegana",
	"gluten_free":  "sin gluten",
	"lactose_free": "sin lactosa",
	"keto":         "cetogénica",
}

func label(m map[string]string, key string) string {
	if l, ok := m[key]; ok {
		return l
	}
	return key
}

// GenerateWorkout asks the model for a workout plan and stores it. When the
// reply holds no usable plan the returned plan is nil and message is the
// model's text.
func (d *Dispatcher) GenerateWorkout(ctx context.Context, userID int64, req PlanRequest, message string) (*models.WorkoutPlan, string, error) {
	uc, err := BuildUserContext(d.DB, userID)
	if err != nil {
		return nil, "", err
	}

	days := req.DaysPerWeek
	if days == 0 {
		days = uc.WorkoutDays
	}
	duration := req.DurationMin
	if duration == 0 {
		duration = uc.SessionMinutes
	}
	level := req.Level
	if level == "" && uc.FitnessLevel != nil {
		level = *uc.FitnessLevel
	}

	lines := []string{
		"Tipo: rutina de entrenamiento",
		fmt.Sprintf("Días por semana: %d", days),
		fmt.Sprintf("Duración por sesión: %d minutos", duration),
	}
	if req.Goal != "" {
		lines = append(lines, "Objetivo: "+label(goalLabels, req.Goal))
	}
	if level != "" {
		lines = append(lines, "Nivel: "+label(levelLabels, level))
	}
	if req.Notes != "" {
		lines = append(lines, "Indicaciones: "+req.Notes)
	}
	if strings.TrimSpace(message) == "" {
		message = "Crea una rutina de entrenamiento para mí."
	}

	parsed, err := d.ask(ctx, llm.CategoryWorkout, userPrompt(uc, lines, message))
	if err != nil {
		return nil, "", err
	}

	in, ok, err := workoutInputFromData(parsed.Data)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, parsed.Message, nil
	}
	in.Goal = req.Goal
	in.Level = level
	if in.DaysPerWeek == 0 {
		in.DaysPerWeek = days
	}
	in.AIGenerated = true

	if err := d.validate.Validate(in); err != nil {
		return nil, "", fmt.Errorf("assistant: generated workout plan: %w", err)
	}
	plan, err := models.CreateWorkoutPlan(d.DB, userID, in)
	if err != nil {
		return nil, "", err
	}
	return plan, parsed.Message, nil
}

// GenerateNutrition asks the model for a nutrition plan and stores it, with
// the same nil-plan convention as GenerateWorkout.
func (d *Dispatcher) GenerateNutrition(ctx context.Context, userID int64, req PlanRequest, message string) (*models.NutritionPlan, string, error) {
	uc, err := BuildUserContext(d.DB, userID)
	if err != nil {
		return nil, "", err
	}

	restrictions := req.Restrictions
	if len(restrictions) == 0 {
		restrictions = uc.Restrictions
	}

	lines := []string{"Tipo: plan de nutrición"}
	if req.Goal != "" {
		lines = append(lines, "Objetivo: "+label(goalLabels, req.Goal))
	}
	if req.Calories > 0 {
		lines = append(lines, fmt.Sprintf("Calorías diarias: %d kcal", req.Calories))
	}
	if len(restrictions) > 0 {
		labels := make([]string, len(restrictions))
		for i, r := range restrictions {
			labels[i] = label(restrictionLabels, r)
		}
		lines = append(lines, "Dieta: "+strings.Join(labels, ", "))
	}
	if req.Notes != "" {
		lines = append(lines, "Indicaciones: "+req.Notes)
	}
	if strings.TrimSpace(message) == "" {
		message = "Crea un plan de nutrición para mí."
	}

	parsed, err := d.ask(ctx, llm.CategoryNutrition, userPrompt(uc, lines, message))
	if err != nil {
		return nil, "", err
	}

	in, ok, err := nutritionInputFromData(parsed.Data)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, parsed.Message, nil
	}
	in.Goal = req.Goal
	if in.DailyCalories == nil && req.Calories > 0 {
		in.DailyCalories = &req.Calories
	}
	in.AIGenerated = true

	if err := d.validate.Validate(in); err != nil {
		return nil, "", fmt.Errorf("assistant: generated nutrition plan: %w", err)
	}
	plan, err := models.CreateNutritionPlan(d.DB, userID, in)
	if err != nil {
		return nil, "", err
	}
	return plan, parsed.Message, nil
}

func (d *Dispatcher) createWorkout(ctx context.Context, userID int64, message string, res intent.Result) (string, *Action, error) {
	plan, text, err := d.GenerateWorkout(ctx, userID, planRequestFrom(res), message)
	if err != nil || plan == nil {
		return text, nil, err
	}
	text = fmt.Sprintf("%s\n\nHe guardado la rutina \"%s\" en tus planes de entrenamiento.", text, plan.Name)
	return text, &Action{Type: ActionWorkoutPlanCreated, Data: map[string]any{
		"plan_id":  plan.ID,
		"name":     plan.Name,
		"sessions": len(plan.Sessions),
	}}, nil
}

func (d *Dispatcher) createNutrition(ctx context.Context, userID int64, message string, res intent.Result) (string, *Action, error) {
	plan, text, err := d.GenerateNutrition(ctx, userID, planRequestFrom(res), message)
	if err != nil || plan == nil {
		return text, nil, err
	}
	text = fmt.Sprintf("%s\n\nHe guardado el plan \"%s\" en tus planes de nutrición.", text, plan.Name)
	return text, &Action{Type: ActionNutritionPlanCreated, Data: map[string]any{
		"plan_id": plan.ID,
		"name":    plan.Name,
		"meals":   len(plan.Meals),
	}}, nil
}

// Models sometimes quote numbers or emit numbers where text is expected;
// these types accept both.
type (
	flexInt    int
	flexFloat  float64
	flexString string
)

func (n *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = flexInt(f)
	return nil
}

func (n *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	// Keep the leading number of values like "90s" or "2200 kcal".
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || (end == 0 && s[end] == '-')) {
		end++
	}
	if end == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return nil
	}
	*n = flexFloat(f)
	return nil
}

func (s *flexString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	*s = flexString(strings.TrimSpace(string(b)))
	return nil
}

type aiWorkoutPlan struct {
	Name        flexString `json:"name"`
	Description flexString `json:"description"`
	DaysPerWeek flexInt    `json:"days_per_week"`
	Sessions    []struct {
		Name      flexString `json:"name"`
		DayOfWeek *flexInt   `json:"day_of_week"`
		Exercises []struct {
			Name        flexString `json:"name"`
			Sets        flexInt    `json:"sets"`
			Reps        flexString `json:"reps"`
			RestSeconds flexInt    `json:"rest_seconds"`
			Notes       flexString `json:"notes"`
		} `json:"exercises"`
	} `json:"sessions"`
}

type aiNutritionPlan struct {
	Name          flexString `json:"name"`
	Description   flexString `json:"description"`
	DailyCalories *flexInt   `json:"daily_calories"`
	ProteinG      *flexFloat `json:"protein_g"`
	CarbsG        *flexFloat `json:"carbs_g"`
	FatG          *flexFloat `json:"fat_g"`
	Meals         []struct {
		Name        flexString `json:"name"`
		MealTime    flexString `json:"meal_time"`
		Description flexString `json:"description"`
		Calories    *flexInt   `json:"calories"`
		ProteinG    *flexFloat `json:"protein_g"`
		CarbsG      *flexFloat `json:"carbs_g"`
		FatG        *flexFloat `json:"fat_g"`
	} `json:"meals"`
}

// remarshal decodes a generic JSON object into dst.
func remarshal(data map[string]any, dst any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func truncate(s flexString, n int) string {
	r := []rune(strings.TrimSpace(string(s)))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// workoutInputFromData converts a model's plan into a create request. ok is
// false when data does not describe a plan with at least one exercise.
func workoutInputFromData(data map[string]any) (models.WorkoutPlanInput, bool, error) {
	if _, hasSessions := data["sessions"]; !hasSessions {
		return models.WorkoutPlanInput{}, false, nil
	}
	var ai aiWorkoutPlan
	if err := remarshal(data, &ai); err != nil {
		return models.WorkoutPlanInput{}, false, fmt.Errorf("assistant: decode workout plan: %w", err)
	}

	in := models.WorkoutPlanInput{
		Name:        truncate(ai.Name, 200),
		Description: truncate(ai.Description, 2000),
		DaysPerWeek: clampInt(int(ai.DaysPerWeek), 0, 7),
	}
	exercises := 0
	for i, s := range ai.Sessions {
		session := models.SessionInput{Name: truncate(s.Name, 200)}
		if session.Name == "" {
			session.Name = fmt.Sprintf("Día %d", i+1)
		}
		if s.DayOfWeek != nil && *s.DayOfWeek >= 1 && *s.DayOfWeek <= 7 {
			day := int(*s.DayOfWeek)
			session.DayOfWeek = &day
		}
		for _, e := range s.Exercises {
			name := truncate(e.Name, 200)
			if name == "" {
				continue
			}
			session.Exercises = append(session.Exercises, models.SessionExerciseInput{
				Name:        name,
				Sets:        clampInt(int(e.Sets), 0, 20),
				Reps:        truncate(e.Reps, 50),
				RestSeconds: clampInt(int(e.RestSeconds), 0, 600),
				Notes:       truncate(e.Notes, 1000),
			})
		}
		exercises += len(session.Exercises)
		in.Sessions = append(in.Sessions, session)
	}

	if in.Name == "" || exercises == 0 {
		return models.WorkoutPlanInput{}, false, nil
	}
	return in, true, nil
}

// nutritionInputFromData converts a model's plan into a create request. ok
// is false when data does not describe a plan with at least one meal.
func nutritionInputFromData(data map[string]any) (models.NutritionPlanInput, bool, error) {
	if _, hasMeals := data["meals"]; !hasMeals {
		return models.NutritionPlanInput{}, false, nil
	}
	var ai aiNutritionPlan
	if err := remarshal(data, &ai); err != nil {
		return models.NutritionPlanInput{}, false, fmt.Errorf("assistant: decode nutrition plan: %w", err)
	}

	in := models.NutritionPlanInput{
		Name:        truncate(ai.Name, 200),
		Description: truncate(ai.Description, 2000),
		ProteinG:    positiveFloat(ai.ProteinG),
		CarbsG:      positiveFloat(ai.CarbsG),
		FatG:        positiveFloat(ai.FatG),
	}
	if ai.DailyCalories != nil && *ai.DailyCalories >= 500 && *ai.DailyCalories <= 10000 {
		kcal := int(*ai.DailyCalories)
		in.DailyCalories = &kcal
	}
	for _, m := range ai.Meals {
		name := truncate(m.Name, 200)
		if name == "" {
			continue
		}
		meal := models.MealInput{
			Name:        name,
			MealTime:    truncate(m.MealTime, 50),
			Description: truncate(m.Description, 2000),
			ProteinG:    positiveFloat(m.ProteinG),
			CarbsG:      positiveFloat(m.CarbsG),
			FatG:        positiveFloat(m.FatG),
		}
		if m.Calories != nil && *m.Calories >= 0 && *m.Calories <= 10000 {
			kcal := int(*m.Calories)
			meal.Calories = &kcal
		}
		in.Meals = append(in.Meals, meal)
	}

	if in.Name == "" || len(in.Meals) == 0 {
		return models.NutritionPlanInput{}, false, nil
	}
	return in, true, nil
}

func positiveFloat(f *flexFloat) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	v := float64(*f)
	return &v
}
