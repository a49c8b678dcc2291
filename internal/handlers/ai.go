package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/sasfit/sasback/internal/assistant"
	"github.com/sasfit/sasback/internal/llm"
	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/models"
)

// AI holds dependencies for assistant handlers.
type AI struct {
	*Deps
}

type chatRequest struct {
	Message string `json:"message" validate:"required,notblank,max=2000"`
}

type adviceRequest struct {
	Question string `json:"question" validate:"required,notblank,max=2000"`
	Category string `json:"category" validate:"omitempty,oneof=advice workout nutrition motivation exercise general"`
}

// Chat classifies and answers a message. Failures come back as the
// assistant's apology with status 200.
func (h *AI) Chat(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req chatRequest
	if !h.bind(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.Assistant.Chat(r.Context(), user.ID, req.Message))
}

// History returns the latest exchanges in chronological order (?limit=).
func (h *AI) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	items, err := models.ListInteractions(h.DB, user.ID, queryInt(r, "limit", 50, 200))
	if err != nil {
		h.fail(w, r, "list interactions", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Advice answers a question with the chosen category's prompt.
func (h *AI) Advice(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req adviceRequest
	if !h.bind(w, r, &req) {
		return
	}
	category := llm.Category(req.Category)
	if category == "" {
		category = llm.CategoryAdvice
	}

	text, err := h.Assistant.Advice(r.Context(), user.ID, category, req.Question)
	if err != nil {
		h.assistantFailed(w, r, "advice", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": text, "category": category})
}

// GenerateWorkout creates and stores a workout plan from structured hints.
func (h *AI) GenerateWorkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req assistant.PlanRequest
	if !h.bind(w, r, &req) {
		return
	}
	plan, text, err := h.Assistant.GenerateWorkout(r.Context(), user.ID, req, "")
	if err != nil {
		h.assistantFailed(w, r, "generate workout", err)
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "El asistente no devolvió una rutina válida", "message": text})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": text, "plan": plan})
}

// GenerateNutrition creates and stores a nutrition plan from structured hints.
func (h *AI) GenerateNutrition(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req assistant.PlanRequest
	if !h.bind(w, r, &req) {
		return
	}
	plan, text, err := h.Assistant.GenerateNutrition(r.Context(), user.ID, req, "")
	if err != nil {
		h.assistantFailed(w, r, "generate nutrition", err)
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "El asistente no devolvió un plan válido", "message": text})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": text, "plan": plan})
}

// assistantFailed answers with the assistant's apology: 503 when no model
// is configured, 504 when the request deadline passed, 500 otherwise.
func (h *AI) assistantFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	reqID := middleware.RequestIDFromContext(r.Context())
	log.Printf("handlers: %s (request %s): %v", op, reqID, err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	body := map[string]any{"error": assistant.ErrorMessage}
	if reqID != "" {
		body["request_id"] = reqID
	}
	if !h.Production {
		body["details"] = err.Error()
	}
	writeJSON(w, status, body)
}
