package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sasfit/sasback/internal/middleware"
)

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	Logger      *slog.Logger
	CORSOrigin  string
	AuthLimiter *middleware.RateLimiter // applied to register and login; nil disables
}

// aiDeadline bounds the model calls behind /api/ai.
const aiDeadline = 90 * time.Second

// NewRouter mounts every endpoint on a chi router.
func NewRouter(d *Deps, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authH := &Auth{Deps: d}
	users := &Users{Deps: d}
	workouts := &Workouts{Deps: d}
	nutrition := &Nutrition{Deps: d}
	ai := &AI{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(d.Production))
	r.Use(middleware.CORS(opts.CORSOrigin))

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(opts.AuthLimiter.Limit)
			}
			r.Post("/auth/register", authH.Register)
			r.Post("/auth/login", authH.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Issuer, d.DB))

			r.Get("/auth/me", authH.Me)
			r.Put("/auth/password", authH.ChangePassword)

			r.Route("/users", func(r chi.Router) {
				r.Get("/profile", users.GetProfile)
				r.Put("/profile", users.UpdateProfile)
				r.Get("/goals", users.ListGoals)
				r.Post("/goals", users.CreateGoal)
				r.Get("/progress", users.ListProgress)
				r.Post("/progress", users.CreateProgress)
				r.Get("/preferences", users.GetPreferences)
				r.Post("/preferences", users.SavePreferences)
			})

			r.Route("/workouts", func(r chi.Router) {
				r.Get("/plans", workouts.ListPlans)
				r.Post("/plans", workouts.CreatePlan)
				r.Get("/plans/{id}", workouts.GetPlan)
				r.Delete("/plans/{id}", workouts.DeletePlan)
				r.Get("/exercises", workouts.ListExercises)
				r.Get("/logs", workouts.ListLogs)
				r.Post("/logs", workouts.CreateLog)
				r.Post("/logs/import", workouts.ImportLogs)
				r.Get("/streaks", workouts.Streaks)
			})

			r.Route("/nutrition", func(r chi.Router) {
				r.Get("/plans", nutrition.ListPlans)
				r.Post("/plans", nutrition.CreatePlan)
				r.Get("/plans/{id}", nutrition.GetPlan)
				r.Put("/plans/{id}", nutrition.UpdatePlan)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Use(middleware.Deadline(aiDeadline))
				r.Post("/chat", ai.Chat)
				r.Get("/history", ai.History)
				r.Post("/advice", ai.Advice)
				r.Post("/generate-workout", ai.GenerateWorkout)
				r.Post("/generate-nutrition", ai.GenerateNutrition)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Ruta no encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
