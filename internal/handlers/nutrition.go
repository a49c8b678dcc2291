package handlers

import (
	"net/http"

	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/models"
)

// Nutrition holds dependencies for nutrition plan handlers.
type Nutrition struct {
	*Deps
}

// ListPlans returns the caller's nutrition plans without meals.
func (h *Nutrition) ListPlans(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	plans, err := models.ListNutritionPlans(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "list nutrition plans", err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan stores a plan and its meals atomically.
func (h *Nutrition) CreatePlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var in models.NutritionPlanInput
	if !h.bind(w, r, &in) {
		return
	}
	plan, err := models.CreateNutritionPlan(h.DB, user.ID, in)
	if err != nil {
		h.fail(w, r, "create nutrition plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// GetPlan returns one plan with its meals.
func (h *Nutrition) GetPlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	plan, err := models.GetNutritionPlan(h.DB, user.ID, id)
	if err != nil {
		h.fail(w, r, "get nutrition plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// UpdatePlan replaces a plan's fields; meals are replaced when supplied.
func (h *Nutrition) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in models.NutritionPlanInput
	if !h.bind(w, r, &in) {
		return
	}
	plan, err := models.UpdateNutritionPlan(h.DB, user.ID, id, in)
	if err != nil {
		h.fail(w, r, "update nutrition plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
