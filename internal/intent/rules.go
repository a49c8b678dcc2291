package intent

import (
	"regexp"
	"strings"
)

// Rule maps keyword groups to an intent. Every group in Require must have at
// least one of its keywords present in the normalized text. Keywords are
// lower case without accents; surround one with spaces to match a whole word.
// When Pattern is set it must match as well.
type Rule struct {
	Kind       Kind
	Require    [][]string
	Pattern    *regexp.Regexp
	Extract    []Extractor
	Confidence float64
}

func (r Rule) matches(text string) bool {
	for _, group := range r.Require {
		if !containsAny(text, group) {
			return false
		}
	}
	if r.Pattern != nil && !r.Pattern.MatchString(text) {
		return false
	}
	return len(r.Require) > 0
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var (
	createVerbs = []string{
		"crear", " crea ", "creame", "nueva", " nuevo plan", "nuevo programa", "nuevo entrenamiento",
		"generar", " genera ", "generame", "disena", "disenar", "arma una", "armame", "hazme", "prepara",
	}
	wantVerbs = []string{
		"quiero", "necesito", "me gustaria", "busco", "quisiera", "recomiendame", "recomienda",
		" dame ", "podrias darme", "puedes darme",
	}
	viewVerbs = []string{
		" ver ", "muestra", "mostrar", "ensena", "cuales son", "lista de mis", "consulta", "revisa",
	}

	workoutNouns   = []string{"rutina", "entrenamiento", "workout", "plan de ejercicio", "programa de ejercicio"}
	nutritionNouns = []string{"dieta", "nutricion", "nutricional", "alimentacion", "plan de comidas", " menu "}
	goalSubjects   = []string{"objetivo", "meta", "perder", "bajar", "ganar", "adelgazar", "llegar a", "pesar", "tonificar", "definir", "aumentar", "mantener"}

	// goalFigureRE finds a weight or a deadline in a goal phrased as a wish.
	goalFigureRE = regexp.MustCompile(`\d+(?:\.\d+)? ?(?:kg|kgs|kilos|kilogramos)\b|\b` + numberPattern +
		` (?:semanas?|mes(?:es)?)\b|(?:llegar a|pesar|bajar a|subir a|quedarme en) (?:los |unos )?\d+`)
)

// DefaultRules is the rule table used by Recognize, in evaluation order.
var DefaultRules = []Rule{
	{
		Kind:       CreateWorkout,
		Require:    [][]string{createVerbs, workoutNouns},
		Extract:    []Extractor{extractDays, extractGoal, extractLevel, extractDuration},
		Confidence: 0.9,
	},
	{
		Kind:       CreateNutrition,
		Require:    [][]string{createVerbs, nutritionNouns},
		Extract:    []Extractor{extractGoal, extractCalories, extractRestrictions},
		Confidence: 0.9,
	},
	{
		Kind: LogProgress,
		Require: [][]string{
			{"registr", "anota", "apunta", "guarda", "actualiza mi peso", "peso actual", "peso hoy", "hoy peso",
				"ahora peso", "me pese", "estoy pesando", "mi peso es", "mi grasa corporal es"},
			{"peso", "pese", "pesando", " kg", "kilos", "grasa"},
		},
		Extract:    []Extractor{extractWeight, extractBodyFat},
		Confidence: 0.85,
	},
	{
		Kind: LogWorkout,
		Require: [][]string{
			{"registr", "anota", "apunta", "termine", "complete", " hice ", "acabo de", "he hecho", "entrene", "corri "},
			{"entren", "rutina", "sesion", "workout", "ejercicio", "minutos", "corri", "gimnasio", " gym ", "cardio", "pesas", "calorias"},
		},
		Extract:    []Extractor{extractDuration, extractCalories},
		Confidence: 0.85,
	},
	{
		Kind:       ViewWorkouts,
		Require:    [][]string{append([]string{"mis rutinas", "mis entrenamientos"}, viewVerbs...), workoutNouns},
		Confidence: 0.85,
	},
	{
		Kind:       ViewNutrition,
		Require:    [][]string{append([]string{"mis dietas", "mis planes de nutricion", "mis planes nutricionales"}, viewVerbs...), nutritionNouns},
		Confidence: 0.85,
	},
	{
		Kind: ViewProgress,
		Require: [][]string{
			append([]string{"como voy", "como va", "historial", "evolucion", "mis avances", "mi progreso", "cuanto he"}, viewVerbs...),
			{"progreso", "avance", "peso", "historial", "evolucion", "como voy", "como va", "medidas", "bajado", "subido"},
		},
		Confidence: 0.8,
	},
	{
		Kind: ViewGoals,
		Require: [][]string{
			append([]string{"mis objetivos", "mis metas", "que objetivos", "que metas", "cual es mi objetivo", "cual es mi meta"}, viewVerbs...),
			{"objetivo", "meta"},
		},
		Confidence: 0.8,
	},
	// Requests phrased as wishes rather than commands.
	{
		Kind:       CreateWorkout,
		Require:    [][]string{wantVerbs, {"rutina", "plan de entrenamiento", "plan de ejercicio", "programa de entrenamiento", "workout"}},
		Extract:    []Extractor{extractDays, extractGoal, extractLevel, extractDuration},
		Confidence: 0.75,
	},
	{
		Kind:       CreateNutrition,
		Require:    [][]string{wantVerbs, {"plan de nutricion", "plan nutricional", "plan de alimentacion", "dieta", "plan de comidas", "menu semanal"}},
		Extract:    []Extractor{extractGoal, extractCalories, extractRestrictions},
		Confidence: 0.75,
	},
	{
		Kind: SetGoal,
		Require: [][]string{
			{"mi objetivo", "mi meta", "objetivo es", "meta es", "establece", "fijar", "ponerme", "proponer"},
			goalSubjects,
		},
		Extract:    []Extractor{extractGoal, extractTargetWeight, extractWeeks},
		Confidence: 0.8,
	},
	// A wish only becomes a goal once it names a weight or a deadline;
	// "quiero perder peso" on its own is a request for advice.
	{
		Kind:       SetGoal,
		Require:    [][]string{{"quiero", "quisiera", "me gustaria"}, goalSubjects},
		Pattern:    goalFigureRE,
		Extract:    []Extractor{extractGoal, extractTargetWeight, extractWeeks},
		Confidence: 0.8,
	},
	{
		Kind: UpdateProfile,
		Require: [][]string{
			{"actualiza", "cambia", "modifica", "mido ", "tengo ", "mi altura", "mi estatura", "mi edad", "soy principiante",
				"soy intermedio", "soy avanzado", "mi nivel", "peso "},
			{"perfil", "altura", "estatura", "edad", " anos ", "mido ", " cm ", "nivel", "principiante", "intermedio", "avanzado"},
		},
		Extract:    []Extractor{extractHeight, extractAge, extractWeight, extractLevel},
		Confidence: 0.8,
	},
	{
		Kind:       ViewProfile,
		Require:    [][]string{append([]string{"mi perfil", "mis datos", "mi informacion"}, viewVerbs...), {"perfil", "datos", "informacion"}},
		Confidence: 0.8,
	},
	{
		Kind: ExerciseInfo,
		Require: [][]string{
			{"como se hace", "como hacer", "como hago", "como realizar", "como se realiza", "que es ", "explica", "tecnica",
				"para que sirve", "que musculos", "informacion sobre"},
			{"ejercicio", "sentadilla", "press", "dominada", "flexion", "plancha", "peso muerto", "zancada", "curl", "remo",
				"burpee", "fondos", "hip thrust", "jalon", "elevacion", "como se hace", "como hacer", "como hago"},
		},
		Extract:    []Extractor{extractExercise},
		Confidence: 0.75,
	},
	{
		Kind: Motivation,
		Require: [][]string{{"motiva", "animo", "desanimad", "cansad", "no puedo mas", "rendirme", "me rindo", "me cuesta",
			"pereza", "flojera", "frustrad", "no tengo ganas", "inspira", "dejarlo"}},
		Confidence: 0.7,
	},
	{
		Kind: NutritionAdvice,
		Require: [][]string{{" comer", "comida", "aliment", "nutri", "dieta", "proteina", "calori", "carbohidrato", "grasa",
			"vitamina", "suplement", "desayun", "cena", "almuerzo", "merienda", "hidrat", "macros", " agua "}},
		Extract:    []Extractor{extractGoal, extractRestrictions},
		Confidence: 0.7,
	},
	{
		Kind: WorkoutAdvice,
		Require: [][]string{{"ejercicio", "entren", "rutina", "musculo", "gimnasio", " gym ", "cardio", "pesas", "fuerza",
			"estiramiento", "calentamiento", " series ", "repeticiones", "descanso", "lesion", "correr"}},
		Extract:    []Extractor{extractGoal, extractLevel},
		Confidence: 0.7,
	},
	{
		Kind:       Help,
		Require:    [][]string{{"ayuda", "ayudame", "que puedes hacer", "que sabes hacer", "como funciona", "opciones", "comandos", " help "}},
		Confidence: 0.9,
	},
	{
		Kind: Greeting,
		Require: [][]string{{" hola ", "buenos dias", "buenas tardes", "buenas noches", " hey ", " saludos ", " que tal ",
			" buenas ", " hi ", " hello "}},
		Confidence: 0.95,
	},
}
