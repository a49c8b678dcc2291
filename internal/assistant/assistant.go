// Package assistant turns a classified chat message into a reply. Each intent
// either reads or writes the user's data directly or asks the configured
// language model, and every failure surfaces as the same apology.
package assistant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sasfit/sasback/internal/intent"
	"github.com/sasfit/sasback/internal/llm"
	"github.com/sasfit/sasback/internal/models"
	"github.com/sasfit/sasback/internal/notify"
	"github.com/sasfit/sasback/internal/validator"
)

// ErrorMessage is the reply for any failure while handling a message.
const ErrorMessage = "Lo siento, ha ocurrido un error al procesar tu mensaje. Por favor, inténtalo de nuevo más tarde."

// Action types attached to replies.
const (
	ActionWorkoutPlanCreated   = "workout_plan_created"
	ActionNutritionPlanCreated = "nutrition_plan_created"
	ActionProgressLogged       = "progress_logged"
	ActionWorkoutLogged        = "workout_logged"
	ActionGoalCreated          = "goal_created"
	ActionProfileUpdated       = "profile_updated"
	ActionShowWorkouts         = "show_workouts"
	ActionShowNutrition        = "show_nutrition"
	ActionShowProgress         = "show_progress"
	ActionShowGoals            = "show_goals"
	ActionShowProfile          = "show_profile"
	ActionShowExercise         = "show_exercise"
)

// Action is a structured side effect the client may render, such as a link
// to a newly created plan.
type Action struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Message    string      `json:"message"`
	Intent     intent.Kind `json:"intent"`
	Confidence float64     `json:"confidence"`
	Action     *Action     `json:"action,omitempty"`
}

// Dispatcher routes classified messages to their handlers.
type Dispatcher struct {
	DB       *sql.DB
	Provider llm.Provider // nil when no model is configured
	Options  llm.Options
	Alerts   *notify.Alerter // optional; told about provider outages and credential errors

	now      func() time.Time
	validate *validator.Validator
}

// New creates a Dispatcher. provider may be nil.
func New(db *sql.DB, provider llm.Provider, opts llm.Options) *Dispatcher {
	return &Dispatcher{
		DB:       db,
		Provider: provider,
		Options:  opts,
		now:      time.Now,
		validate: validator.New(),
	}
}

// Chat classifies message, handles it and records the exchange. It always
// returns a reply; failures are logged and answered with ErrorMessage.
func (d *Dispatcher) Chat(ctx context.Context, userID int64, message string) *Reply {
	res := intent.Recognize(message)

	reply, err := d.Handle(ctx, userID, message, res)
	if err != nil {
		log.Printf("assistant: handle %s for user %d: %v", res.Kind, userID, err)
		reply = &Reply{Message: ErrorMessage, Intent: res.Kind, Confidence: res.Confidence}
	}

	if _, err := models.LogInteraction(d.DB, userID, message, string(res.Kind), res.Confidence, reply.Message); err != nil {
		log.Printf("assistant: log interaction for user %d: %v", userID, err)
	}
	return reply
}

// Handle runs the handler for res.Kind.
func (d *Dispatcher) Handle(ctx context.Context, userID int64, message string, res intent.Result) (*Reply, error) {
	var (
		text   string
		action *Action
		err    error
	)

	switch res.Kind {
	case intent.CreateWorkout:
		text, action, err = d.createWorkout(ctx, userID, message, res)
	case intent.CreateNutrition:
		text, action, err = d.createNutrition(ctx, userID, message, res)
	case intent.LogProgress:
		text, action, err = d.logProgress(userID, message, res)
	case intent.LogWorkout:
		text, action, err = d.logWorkout(userID, message, res)
	case intent.ViewWorkouts:
		text, action, err = d.viewWorkouts(userID)
	case intent.ViewNutrition:
		text, action, err = d.viewNutrition(userID)
	case intent.ViewProgress:
		text, action, err = d.viewProgress(userID)
	case intent.ViewGoals:
		text, action, err = d.viewGoals(userID)
	case intent.SetGoal:
		text, action, err = d.setGoal(userID, message, res)
	case intent.UpdateProfile:
		text, action, err = d.updateProfile(userID, res)
	case intent.ViewProfile:
		text, action, err = d.viewProfile(userID)
	case intent.ExerciseInfo:
		text, action, err = d.exerciseInfo(ctx, userID, message, res)
	case intent.Motivation:
		text, err = d.Advice(ctx, userID, llm.CategoryMotivation, message)
	case intent.NutritionAdvice:
		text, err = d.Advice(ctx, userID, llm.CategoryNutrition, message)
	case intent.WorkoutAdvice:
		text, err = d.Advice(ctx, userID, llm.CategoryAdvice, message)
	case intent.Help:
		text = helpText
	case intent.Greeting:
		text, err = d.greeting(userID)
	default:
		text, err = d.Advice(ctx, userID, llm.CategoryGeneral, message)
	}
	if err != nil {
		return nil, err
	}

	return &Reply{Message: text, Intent: res.Kind, Confidence: res.Confidence, Action: action}, nil
}

// Advice answers a free-form question with the category's system prompt and
// the user's context.
func (d *Dispatcher) Advice(ctx context.Context, userID int64, category llm.Category, question string) (string, error) {
	uc, err := BuildUserContext(d.DB, userID)
	if err != nil {
		return "", err
	}
	parsed, err := d.ask(ctx, category, userPrompt(uc, nil, question))
	if err != nil {
		return "", err
	}
	return parsed.Message, nil
}

// ask sends one prompt to the provider and parses the reply.
func (d *Dispatcher) ask(ctx context.Context, category llm.Category, prompt string) (llm.ParsedReply, error) {
	if d.Provider == nil {
		return llm.ParsedReply{}, llm.ErrNotConfigured
	}
	resp, err := d.Provider.Generate(ctx, llm.SystemPrompt(category), prompt, d.Options)
	if err != nil {
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			log.Printf("assistant: %s", apiErr.UserMessage())
			if alertable(apiErr.StatusCode) {
				d.Alerts.Alert(fmt.Sprintf("%s:%d", apiErr.Provider, apiErr.StatusCode), apiErr.UserMessage())
			}
		}
		return llm.ParsedReply{}, fmt.Errorf("assistant: generate %s: %w", category, err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return llm.ParsedReply{}, fmt.Errorf("assistant: generate %s: empty reply", category)
	}
	return llm.ParseReply(resp.Content), nil
}

// alertable reports whether a provider status needs an operator: bad
// credentials, exhausted quota or an outage.
func alertable(status int) bool {
	return status == 401 || status == 403 || status == 429 || status >= 500
}
