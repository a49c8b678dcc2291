package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sasfit/sasback/internal/importers"
	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/models"
)

// maxImportBytes caps uploaded training-app exports.
const maxImportBytes = 5 << 20

// Workouts holds dependencies for workout plan, exercise and log handlers.
type Workouts struct {
	*Deps
}

// ListPlans returns the caller's plans without their sessions.
func (h *Workouts) ListPlans(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	plans, err := models.ListWorkoutPlans(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "list workout plans", err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan stores a plan with its sessions and exercises atomically.
func (h *Workouts) CreatePlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var in models.WorkoutPlanInput
	if !h.bind(w, r, &in) {
		return
	}
	plan, err := models.CreateWorkoutPlan(h.DB, user.ID, in)
	if err != nil {
		h.fail(w, r, "create workout plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// GetPlan returns one plan with sessions and exercises. Plans owned by
// someone else are reported as not found.
func (h *Workouts) GetPlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	plan, err := models.GetWorkoutPlan(h.DB, user.ID, id)
	if err != nil {
		h.fail(w, r, "get workout plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// DeletePlan removes one of the caller's plans.
func (h *Workouts) DeletePlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := models.DeleteWorkoutPlan(h.DB, user.ID, id); err != nil {
		h.fail(w, r, "delete workout plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListExercises searches the catalog (?muscle_group=, ?q=).
func (h *Workouts) ListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exercises, err := models.ListExercises(h.DB, models.ExerciseFilter{
		MuscleGroup: strings.TrimSpace(q.Get("muscle_group")),
		Query:       strings.TrimSpace(q.Get("q")),
	})
	if err != nil {
		h.fail(w, r, "list exercises", err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// CreateLog records a completed workout.
func (h *Workouts) CreateLog(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var in models.WorkoutLogInput
	if !h.bind(w, r, &in) {
		return
	}
	entry, err := models.CreateWorkoutLog(h.DB, user.ID, in)
	if err != nil {
		h.fail(w, r, "create workout log", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListLogs returns workout logs, newest first (?limit=, default 30).
func (h *Workouts) ListLogs(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	logs, err := models.ListWorkoutLogs(h.DB, user.ID, queryInt(r, "limit", 30, 365))
	if err != nil {
		h.fail(w, r, "list workout logs", err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// ImportLogs records workout history from a Strong or Hevy CSV export sent
// as the raw request body. Days already logged are skipped.
func (h *Workouts) ImportLogs(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "El archivo es demasiado grande")
			return
		}
		writeError(w, http.StatusBadRequest, "No se pudo leer el archivo")
		return
	}

	pf, err := importers.Parse(data)
	if err != nil {
		if errors.Is(err, importers.ErrUnknownFormat) {
			writeError(w, http.StatusBadRequest, "Formato no reconocido: se admiten exportaciones CSV de Strong y Hevy")
			return
		}
		writeError(w, http.StatusBadRequest, "No se pudo leer el CSV")
		return
	}

	res, err := importers.Apply(h.DB, user.ID, pf)
	if err != nil {
		h.fail(w, r, "import workout logs", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Streaks reports weekly adherence against the preferred training days
// (?weeks=, default 8, at most 52).
func (h *Workouts) Streaks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	streaks, err := models.WeeklyStreaks(h.DB, user.ID, queryInt(r, "weeks", 8, 52), time.Now())
	if err != nil {
		h.fail(w, r, "weekly streaks", err)
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}
