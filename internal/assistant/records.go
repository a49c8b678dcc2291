package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sasfit/sasback/internal/intent"
	"github.com/sasfit/sasback/internal/llm"
	"github.com/sasfit/sasback/internal/models"
)

// listLimit caps how many rows a view reply summarizes.
const listLimit = 5

func (d *Dispatcher) logProgress(userID int64, message string, res intent.Result) (string, *Action, error) {
	weight, hasWeight := res.Float("weight")
	bodyFat, hasFat := res.Float("body_fat")
	if !hasWeight && !hasFat {
		return "Para registrar tu progreso necesito un dato concreto, por ejemplo: \"Registra mi peso de 72,5 kg\" o \"Mi grasa corporal es 18%\".", nil, nil
	}

	previous, err := models.ListProgress(d.DB, userID, 1)
	if err != nil {
		return "", nil, err
	}

	var weightPtr, fatPtr *float64
	if hasWeight {
		weightPtr = &weight
	}
	if hasFat {
		fatPtr = &bodyFat
	}
	entry, err := models.CreateProgress(d.DB, userID, "", weightPtr, fatPtr, message)
	if err != nil {
		return "", nil, err
	}
	if hasWeight {
		if _, err := models.UpsertProfile(d.DB, userID, models.ProfileUpdate{WeightKg: &weight}); err != nil {
			return "", nil, err
		}
	}

	var parts []string
	if hasWeight {
		parts = append(parts, fmt.Sprintf("peso %s kg", formatNumber(weight)))
	}
	if hasFat {
		parts = append(parts, fmt.Sprintf("grasa corporal %s%%", formatNumber(bodyFat)))
	}
	text := fmt.Sprintf("¡Registrado! He guardado tu %s con fecha %s.", strings.Join(parts, " y "), entry.Date)
	if hasWeight && len(previous) > 0 && previous[0].WeightKg != nil {
		diff := weight - *previous[0].WeightKg
		switch {
		case diff < 0:
			text += fmt.Sprintf(" Has bajado %s kg desde tu último registro.", formatNumber(-diff))
		case diff > 0:
			text += fmt.Sprintf(" Has subido %s kg desde tu último registro.", formatNumber(diff))
		default:
			text += " Mantienes el mismo peso que en tu último registro."
		}
	}

	return text, &Action{Type: ActionProgressLogged, Data: map[string]any{
		"progress_id":  entry.ID,
		"date":         entry.Date,
		"weight_kg":    entry.WeightKg,
		"body_fat_pct": entry.BodyFatPct,
	}}, nil
}

func (d *Dispatcher) logWorkout(userID int64, message string, res intent.Result) (string, *Action, error) {
	in := models.WorkoutLogInput{Notes: message}
	if v, ok := res.Int("duration"); ok {
		in.DurationMin = &v
	}
	if v, ok := res.Int("calories"); ok {
		in.CaloriesBurned = &v
	}
	entry, err := models.CreateWorkoutLog(d.DB, userID, in)
	if err != nil {
		return "", nil, err
	}

	text := "¡Buen trabajo! He registrado tu entrenamiento de hoy"
	switch {
	case entry.DurationMin != nil && entry.CaloriesBurned != nil:
		text += fmt.Sprintf(" (%d minutos, %d kcal).", *entry.DurationMin, *entry.CaloriesBurned)
	case entry.DurationMin != nil:
		text += fmt.Sprintf(" (%d minutos).", *entry.DurationMin)
	case entry.CaloriesBurned != nil:
		text += fmt.Sprintf(" (%d kcal).", *entry.CaloriesBurned)
	default:
		text += "."
	}

	return text, &Action{Type: ActionWorkoutLogged, Data: map[string]any{
		"log_id":          entry.ID,
		"date":            entry.Date,
		"duration_min":    entry.DurationMin,
		"calories_burned": entry.CaloriesBurned,
	}}, nil
}

func (d *Dispatcher) viewWorkouts(userID int64) (string, *Action, error) {
	plans, err := models.ListWorkoutPlans(d.DB, userID)
	if err != nil {
		return "", nil, err
	}
	if len(plans) == 0 {
		return "Todavía no tienes rutinas. Pídeme una, por ejemplo: \"Crea una rutina de 3 días para ganar músculo\".",
			&Action{Type: ActionShowWorkouts, Data: map[string]any{"plans": plans}}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tienes %d %s:\n", len(plans), plural(len(plans), "rutina", "rutinas"))
	for _, p := range plans[:min(len(plans), listLimit)] {
		fmt.Fprintf(&b, "• %s (%d %s", p.Name, p.SessionCount, plural(p.SessionCount, "sesión", "sesiones"))
		if p.DaysPerWeek > 0 {
			fmt.Fprintf(&b, ", %d días/semana", p.DaysPerWeek)
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n"), &Action{Type: ActionShowWorkouts, Data: map[string]any{"plans": plans}}, nil
}

func (d *Dispatcher) viewNutrition(userID int64) (string, *Action, error) {
	plans, err := models.ListNutritionPlans(d.DB, userID)
	if err != nil {
		return "", nil, err
	}
	if len(plans) == 0 {
		return "Todavía no tienes planes de nutrición. Pídeme uno, por ejemplo: \"Necesito un plan de nutrición para perder peso\".",
			&Action{Type: ActionShowNutrition, Data: map[string]any{"plans": plans}}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tienes %d %s de nutrición:\n", len(plans), plural(len(plans), "plan", "planes"))
	for _, p := range plans[:min(len(plans), listLimit)] {
		fmt.Fprintf(&b, "• %s (%d %s", p.Name, p.MealCount, plural(p.MealCount, "comida", "comidas"))
		if p.DailyCalories != nil {
			fmt.Fprintf(&b, ", %d kcal/día", *p.DailyCalories)
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n"), &Action{Type: ActionShowNutrition, Data: map[string]any{"plans": plans}}, nil
}

func (d *Dispatcher) viewProgress(userID int64) (string, *Action, error) {
	entries, err := models.ListProgress(d.DB, userID, 10)
	if err != nil {
		return "", nil, err
	}
	if len(entries) == 0 {
		return "Aún no has registrado tu progreso. Dime, por ejemplo: \"Registra mi peso actual de 75 kg\".",
			&Action{Type: ActionShowProgress, Data: map[string]any{"entries": entries}}, nil
	}

	var b strings.Builder
	b.WriteString("Tus últimos registros:\n")
	for _, e := range entries[:min(len(entries), listLimit)] {
		fmt.Fprintf(&b, "• %s:", e.Date)
		if e.WeightKg != nil {
			fmt.Fprintf(&b, " %s kg", formatNumber(*e.WeightKg))
		}
		if e.BodyFatPct != nil {
			fmt.Fprintf(&b, " %s%% grasa", formatNumber(*e.BodyFatPct))
		}
		b.WriteString("\n")
	}

	// entries are newest first; compare the newest and oldest weights.
	var newest, oldest *models.ProgressEntry
	for _, e := range entries {
		if e.WeightKg == nil {
			continue
		}
		if newest == nil {
			newest = e
		}
		oldest = e
	}
	if newest != nil && oldest != newest {
		diff := formatNumber(*newest.WeightKg - *oldest.WeightKg)
		if !strings.HasPrefix(diff, "-") && diff != "0" {
			diff = "+" + diff
		}
		fmt.Fprintf(&b, "Cambio de peso desde %s: %s kg", oldest.Date, diff)
	}

	return strings.TrimRight(b.String(), "\n"), &Action{Type: ActionShowProgress, Data: map[string]any{"entries": entries}}, nil
}

func (d *Dispatcher) viewGoals(userID int64) (string, *Action, error) {
	goals, err := models.ListGoals(d.DB, userID)
	if err != nil {
		return "", nil, err
	}
	if len(goals) == 0 {
		return "No tienes objetivos definidos. Puedes decirme, por ejemplo: \"Quiero perder 5 kilos en 10 semanas\".",
			&Action{Type: ActionShowGoals, Data: map[string]any{"goals": goals}}, nil
	}

	var b strings.Builder
	b.WriteString("Tus objetivos:\n")
	for _, g := range goals[:min(len(goals), listLimit)] {
		fmt.Fprintf(&b, "• %s", capitalize(label(goalLabels, g.GoalType)))
		if g.TargetValue != nil {
			fmt.Fprintf(&b, ", meta %s kg", formatNumber(*g.TargetValue))
		}
		if g.TargetDate != nil {
			fmt.Fprintf(&b, ", para el %s", *g.TargetDate)
		}
		if g.Status != "active" {
			fmt.Fprintf(&b, " (%s)", g.Status)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), &Action{Type: ActionShowGoals, Data: map[string]any{"goals": goals}}, nil
}

func (d *Dispatcher) setGoal(userID int64, message string, res intent.Result) (string, *Action, error) {
	goalType, ok := res.String("goal")
	if !ok {
		return "¿Qué objetivo quieres fijar? Por ejemplo: perder peso, ganar músculo, ganar fuerza o mejorar tu resistencia.", nil, nil
	}

	var target *float64
	if v, ok := res.Float("target_weight"); ok {
		target = &v
	}
	var targetDate *string
	if weeks, ok := res.Int("weeks"); ok {
		date := d.now().AddDate(0, 0, 7*weeks).Format(models.DateLayout)
		targetDate = &date
	}

	goal, err := models.CreateGoal(d.DB, userID, goalType, target, targetDate, message)
	if err != nil {
		return "", nil, err
	}

	text := fmt.Sprintf("¡Objetivo fijado: %s", label(goalLabels, goal.GoalType))
	if goal.TargetValue != nil {
		text += fmt.Sprintf(" hasta %s kg", formatNumber(*goal.TargetValue))
	}
	if goal.TargetDate != nil {
		text += fmt.Sprintf(" antes del %s", *goal.TargetDate)
	}
	text += "! Te ayudaré a conseguirlo."

	return text, &Action{Type: ActionGoalCreated, Data: map[string]any{
		"goal_id":      goal.ID,
		"goal_type":    goal.GoalType,
		"target_value": goal.TargetValue,
		"target_date":  goal.TargetDate,
	}}, nil
}

func (d *Dispatcher) updateProfile(userID int64, res intent.Result) (string, *Action, error) {
	var u models.ProfileUpdate
	var changed []string
	if v, ok := res.Float("height"); ok {
		u.HeightCm = &v
		changed = append(changed, fmt.Sprintf("altura %s cm", formatNumber(v)))
	}
	if v, ok := res.Int("age"); ok {
		u.Age = &v
		changed = append(changed, fmt.Sprintf("edad %d años", v))
	}
	if v, ok := res.Float("weight"); ok {
		u.WeightKg = &v
		changed = append(changed, fmt.Sprintf("peso %s kg", formatNumber(v)))
	}
	if v, ok := res.String("level"); ok {
		u.FitnessLevel = &v
		changed = append(changed, "nivel "+label(levelLabels, v))
	}
	if len(changed) == 0 {
		return "¿Qué dato quieres actualizar? Puedes decirme tu altura, edad, peso o nivel, por ejemplo: \"Mido 175 cm y tengo 30 años\".", nil, nil
	}

	profile, err := models.UpsertProfile(d.DB, userID, u)
	if err != nil {
		return "", nil, err
	}
	return "He actualizado tu perfil: " + strings.Join(changed, ", ") + ".",
		&Action{Type: ActionProfileUpdated, Data: map[string]any{"profile": profile}}, nil
}

func (d *Dispatcher) viewProfile(userID int64) (string, *Action, error) {
	user, err := models.GetUserByID(d.DB, userID)
	if err != nil {
		return "", nil, err
	}
	profile, err := models.GetProfile(d.DB, userID)
	if err != nil {
		return "", nil, err
	}
	prefs, err := models.GetPreferences(d.DB, userID)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tu perfil, %s:\n", user.Name)
	fmt.Fprintf(&b, "• Edad: %s\n", orUnknown(profile.Age, func(v int) string { return fmt.Sprintf("%d años", v) }))
	fmt.Fprintf(&b, "• Altura: %s\n", orUnknown(profile.HeightCm, func(v float64) string { return formatNumber(v) + " cm" }))
	fmt.Fprintf(&b, "• Peso: %s\n", orUnknown(profile.WeightKg, func(v float64) string { return formatNumber(v) + " kg" }))
	fmt.Fprintf(&b, "• Nivel: %s\n", orUnknown(profile.FitnessLevel, func(v string) string { return label(levelLabels, v) }))
	fmt.Fprintf(&b, "• Entrenamiento: %d días/semana, %d minutos por sesión", prefs.PreferredWorkoutDays, prefs.WorkoutDurationMin)

	return b.String(), &Action{Type: ActionShowProfile, Data: map[string]any{
		"profile":     profile,
		"preferences": prefs,
	}}, nil
}

func (d *Dispatcher) exerciseInfo(ctx context.Context, userID int64, message string, res intent.Result) (string, *Action, error) {
	if name, ok := res.String("exercise"); ok {
		ex, err := models.FindExercise(d.DB, name)
		switch {
		case err == nil && ex.Description != "":
			text := fmt.Sprintf("%s (%s", ex.Name, ex.MuscleGroup)
			if ex.Equipment != "" {
				text += ", " + ex.Equipment
			}
			text += "): " + ex.Description
			return text, &Action{Type: ActionShowExercise, Data: map[string]any{"exercise": ex}}, nil
		case err != nil && !errors.Is(err, models.ErrNotFound):
			return "", nil, err
		}
	}

	text, err := d.Advice(ctx, userID, llm.CategoryExercise, message)
	return text, nil, err
}

func (d *Dispatcher) greeting(userID int64) (string, error) {
	user, err := models.GetUserByID(d.DB, userID)
	if err != nil {
		return "", err
	}
	name := strings.Fields(user.Name)
	if len(name) == 0 {
		return greetingText, nil
	}
	return fmt.Sprintf("¡Hola, %s! %s", name[0], greetingBody), nil
}
