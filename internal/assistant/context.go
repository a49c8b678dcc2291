package assistant

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sasfit/sasback/internal/models"
)

// UserContext is the per-user briefing sent along with every prompt.
type UserContext struct {
	Name           string           `json:"nombre"`
	Age            *int             `json:"edad,omitempty"`
	Gender         *string          `json:"genero,omitempty"`
	HeightCm       *float64         `json:"altura_cm,omitempty"`
	WeightKg       *float64         `json:"peso_kg,omitempty"`
	FitnessLevel   *string          `json:"nivel,omitempty"`
	ActivityLevel  *string          `json:"actividad,omitempty"`
	WorkoutDays    int              `json:"dias_entrenamiento_semana"`
	SessionMinutes int              `json:"minutos_por_sesion"`
	Restrictions   []string         `json:"restricciones_alimentarias"`
	Equipment      []string         `json:"equipamiento"`
	Goals          []GoalSummary    `json:"objetivos"`
	RecentProgress []ProgressSample `json:"progreso_reciente"`
}

// GoalSummary is an active goal as shown to the model.
type GoalSummary struct {
	Type        string   `json:"tipo"`
	TargetValue *float64 `json:"valor_objetivo,omitempty"`
	TargetDate  *string  `json:"fecha_objetivo,omitempty"`
	Description string   `json:"descripcion,omitempty"`
}

// ProgressSample is one recent measurement.
type ProgressSample struct {
	Date       string   `json:"fecha"`
	WeightKg   *float64 `json:"peso_kg,omitempty"`
	BodyFatPct *float64 `json:"grasa_corporal,omitempty"`
}

// recentProgressLimit is how many measurements go into the context.
const recentProgressLimit = 5

// BuildUserContext gathers profile, preferences, active goals and recent
// progress for one user. Pure reads, no model involved.
func BuildUserContext(db *sql.DB, userID int64) (*UserContext, error) {
	user, err := models.GetUserByID(db, userID)
	if err != nil {
		return nil, fmt.Errorf("assistant: get user %d: %w", userID, err)
	}
	uc := &UserContext{Name: user.Name}

	profile, err := models.GetProfile(db, userID)
	if err != nil {
		return nil, fmt.Errorf("assistant: build profile: %w", err)
	}
	uc.Age = profile.Age
	uc.Gender = profile.Gender
	uc.HeightCm = profile.HeightCm
	uc.WeightKg = profile.WeightKg
	uc.FitnessLevel = profile.FitnessLevel
	uc.ActivityLevel = profile.ActivityLevel

	prefs, err := models.GetPreferences(db, userID)
	if err != nil {
		return nil, fmt.Errorf("assistant: build preferences: %w", err)
	}
	uc.WorkoutDays = prefs.PreferredWorkoutDays
	uc.SessionMinutes = prefs.WorkoutDurationMin
	uc.Restrictions = prefs.DietaryRestrictions
	uc.Equipment = prefs.Equipment

	goals, err := models.ListGoals(db, userID)
	if err != nil {
		return nil, fmt.Errorf("assistant: build goals: %w", err)
	}
	uc.Goals = []GoalSummary{}
	for _, g := range goals {
		if g.Status != "active" {
			continue
		}
		uc.Goals = append(uc.Goals, GoalSummary{
			Type:        g.GoalType,
			TargetValue: g.TargetValue,
			TargetDate:  g.TargetDate,
			Description: g.Description,
		})
	}

	progress, err := models.ListProgress(db, userID, recentProgressLimit)
	if err != nil {
		return nil, fmt.Errorf("assistant: build progress: %w", err)
	}
	uc.RecentProgress = make([]ProgressSample, 0, len(progress))
	for _, p := range progress {
		uc.RecentProgress = append(uc.RecentProgress, ProgressSample{Date: p.Date, WeightKg: p.WeightKg, BodyFatPct: p.BodyFatPct})
	}

	return uc, nil
}

// userPrompt lays out the context, any structured request lines and the
// user's own words.
func userPrompt(uc *UserContext, request []string, message string) string {
	var b strings.Builder

	if uc != nil {
		contextJSON, err := json.MarshalIndent(uc, "", "  ")
		if err == nil {
			b.WriteString("CONTEXTO DEL USUARIO:\n")
			b.Write(contextJSON)
			b.WriteString("\n\n")
		}
	}

	if len(request) > 0 {
		b.WriteString("SOLICITUD:\n")
		for _, line := range request {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("MENSAJE DEL USUARIO:\n")
	b.WriteString(strings.TrimSpace(message))
	return b.String()
}
