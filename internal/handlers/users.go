package handlers

import (
	"net/http"

	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/models"
	"github.com/sasfit/sasback/internal/validator"
)

// Users holds dependencies for profile, goal, progress and preference handlers.
type Users struct {
	*Deps
}

type profileRequest struct {
	Age           *int     `json:"age" validate:"omitempty,gte=10,lte=120"`
	Gender        *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	HeightCm      *float64 `json:"height_cm" validate:"omitempty,gte=100,lte=250"`
	WeightKg      *float64 `json:"weight_kg" validate:"omitempty,gte=20,lte=400"`
	FitnessLevel  *string  `json:"fitness_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	ActivityLevel *string  `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very_active"`
}

type goalRequest struct {
	GoalType    string   `json:"goal_type" validate:"required,oneof=weight_loss muscle_gain maintenance endurance strength"`
	TargetValue *float64 `json:"target_value" validate:"omitempty,gt=0,lte=1000"`
	TargetDate  *string  `json:"target_date" validate:"omitempty,dateformat"`
	Description string   `json:"description" validate:"max=500"`
}

type progressRequest struct {
	Date       string   `json:"date" validate:"omitempty,dateformat"`
	WeightKg   *float64 `json:"weight_kg" validate:"omitempty,gte=20,lte=400"`
	BodyFatPct *float64 `json:"body_fat_pct" validate:"omitempty,gte=2,lte=70"`
	Notes      string   `json:"notes" validate:"max=1000"`
}

type preferencesRequest struct {
	PreferredWorkoutDays *int     `json:"preferred_workout_days" validate:"omitempty,gte=1,lte=7"`
	WorkoutDurationMin   *int     `json:"workout_duration_min" validate:"omitempty,gte=10,lte=300"`
	DietaryRestrictions  []string `json:"dietary_restrictions" validate:"omitempty,dive,oneof=vegetarian vegan gluten_free lactose_free keto"`
	Equipment            []string `json:"equipment" validate:"omitempty,dive,notblank,max=50"`
	Language             *string  `json:"language" validate:"omitempty,oneof=es en"`
}

// GetProfile returns the caller's profile.
func (h *Users) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	profile, err := models.GetProfile(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile merges the supplied fields into the caller's profile.
func (h *Users) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req profileRequest
	if !h.bind(w, r, &req) {
		return
	}
	profile, err := models.UpsertProfile(h.DB, user.ID, models.ProfileUpdate{
		Age:           req.Age,
		Gender:        req.Gender,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		FitnessLevel:  req.FitnessLevel,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		h.fail(w, r, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ListGoals returns the caller's goals, newest first.
func (h *Users) ListGoals(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	goals, err := models.ListGoals(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "list goals", err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// CreateGoal adds a goal.
func (h *Users) CreateGoal(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req goalRequest
	if !h.bind(w, r, &req) {
		return
	}
	goal, err := models.CreateGoal(h.DB, user.ID, req.GoalType, req.TargetValue, req.TargetDate, req.Description)
	if err != nil {
		h.fail(w, r, "create goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// ListProgress returns measurements, newest first (?limit=, default 30).
func (h *Users) ListProgress(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	entries, err := models.ListProgress(h.DB, user.ID, queryInt(r, "limit", 30, 365))
	if err != nil {
		h.fail(w, r, "list progress", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateProgress records a measurement. A weight also updates the profile.
func (h *Users) CreateProgress(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req progressRequest
	if !h.bind(w, r, &req) {
		return
	}
	if req.WeightKg == nil && req.BodyFatPct == nil {
		h.fail(w, r, "create progress", validator.ValidationErrors{{
			Field:   "weight_kg",
			Message: "weight_kg o body_fat_pct es obligatorio",
			Tag:     "required_without",
		}})
		return
	}
	entry, err := models.CreateProgress(h.DB, user.ID, req.Date, req.WeightKg, req.BodyFatPct, req.Notes)
	if err != nil {
		h.fail(w, r, "create progress", err)
		return
	}
	if req.WeightKg != nil {
		if _, err := models.UpsertProfile(h.DB, user.ID, models.ProfileUpdate{WeightKg: req.WeightKg}); err != nil {
			h.fail(w, r, "mirror weight into profile", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, entry)
}

// GetPreferences returns the caller's preferences, or the defaults.
func (h *Users) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	prefs, err := models.GetPreferences(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "get preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// SavePreferences applies the supplied fields over the current preferences.
func (h *Users) SavePreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req preferencesRequest
	if !h.bind(w, r, &req) {
		return
	}

	prefs, err := models.GetPreferences(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "get preferences", err)
		return
	}
	if req.PreferredWorkoutDays != nil {
		prefs.PreferredWorkoutDays = *req.PreferredWorkoutDays
	}
	if req.WorkoutDurationMin != nil {
		prefs.WorkoutDurationMin = *req.WorkoutDurationMin
	}
	if req.DietaryRestrictions != nil {
		prefs.DietaryRestrictions = req.DietaryRestrictions
	}
	if req.Equipment != nil {
		prefs.Equipment = req.Equipment
	}
	if req.Language != nil {
		prefs.Language = *req.Language
	}

	saved, err := models.UpsertPreferences(h.DB, user.ID, *prefs)
	if err != nil {
		h.fail(w, r, "save preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
