// Package intent classifies Spanish chat messages into a fixed set of
// intents and extracts their parameters with regular expressions.
//
// Classification is an ordered rule table: the first rule whose keyword
// groups all match wins, and each rule carries a fixed confidence. A message
// that matches no rule is general advice.
package intent

// Kind identifies what the user is asking for.
type Kind string

const (
	CreateWorkout   Kind = "create_workout"
	CreateNutrition Kind = "create_nutrition"
	LogProgress     Kind = "log_progress"
	LogWorkout      Kind = "log_workout"
	ViewWorkouts    Kind = "view_workouts"
	ViewNutrition   Kind = "view_nutrition"
	ViewProgress    Kind = "view_progress"
	ViewGoals       Kind = "view_goals"
	SetGoal         Kind = "set_goal"
	UpdateProfile   Kind = "update_profile"
	ViewProfile     Kind = "view_profile"
	ExerciseInfo    Kind = "exercise_info"
	Motivation      Kind = "motivation"
	NutritionAdvice Kind = "nutrition_advice"
	WorkoutAdvice   Kind = "workout_advice"
	Help            Kind = "help"
	Greeting        Kind = "greeting"
	GeneralAdvice   Kind = "general_advice"
)

// Kinds lists every intent, fallback last.
var Kinds = []Kind{
	CreateWorkout, CreateNutrition, LogProgress, LogWorkout,
	ViewWorkouts, ViewNutrition, ViewProgress, ViewGoals,
	SetGoal, UpdateProfile, ViewProfile, ExerciseInfo,
	Motivation, NutritionAdvice, WorkoutAdvice, Help, Greeting,
	GeneralAdvice,
}

// FallbackConfidence is reported when no rule matches.
const FallbackConfidence = 0.5

// Result is the outcome of classifying one message. Params is never nil.
type Result struct {
	Kind       Kind           `json:"intent"`
	Params     map[string]any `json:"params"`
	Confidence float64        `json:"confidence"`
}

// Int returns an integer parameter.
func (r Result) Int(name string) (int, bool) {
	v, ok := r.Params[name].(int)
	return v, ok
}

// Float returns a numeric parameter as float64.
func (r Result) Float(name string) (float64, bool) {
	switch v := r.Params[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String returns a string parameter.
func (r Result) String(name string) (string, bool) {
	v, ok := r.Params[name].(string)
	return v, ok && v != ""
}

// Strings returns a list parameter.
func (r Result) Strings(name string) []string {
	v, _ := r.Params[name].([]string)
	return v
}

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, evaluated in order.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

var defaultClassifier = New(DefaultRules)

// Recognize classifies message with the default rule table.
func Recognize(message string) Result {
	return defaultClassifier.Recognize(message)
}

// Recognize returns the first matching rule's intent and parameters, or
// GeneralAdvice when nothing matches. It never fails.
func (c *Classifier) Recognize(message string) Result {
	text := Normalize(message)
	for _, rule := range c.rules {
		if !rule.matches(text) {
			continue
		}
		params := make(map[string]any, len(rule.Extract))
		for _, ex := range rule.Extract {
			if v, ok := ex.Extract(text); ok {
				params[ex.Name] = v
			}
		}
		return Result{Kind: rule.Kind, Params: params, Confidence: rule.Confidence}
	}
	return Result{Kind: GeneralAdvice, Params: map[string]any{}, Confidence: FallbackConfidence}
}
