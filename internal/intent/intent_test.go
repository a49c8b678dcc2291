package intent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hola", " hola "},
		{"¿Cómo se hace una SENTADILLA?", " como se hace una sentadilla "},
		{"Peso 75,5 kg.", " peso 75.5 kg "},
		{"Mido 1.80, ¡genial!", " mido 1.80 genial "},
		{"  diseña   mi   año  ", " disena mi ano "},
		{"20% de grasa", " 20% de grasa "},
		{"", " "},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestRecognize_CreateWorkoutKeywords(t *testing.T) {
	verbs := []string{"crear", "nueva", "generar"}
	nouns := []string{"rutina", "entrenamiento", "workout"}
	templates := []string{
		"%s %s",
		"Quiero %s una %s por favor",
		"¿Puedes ver mis planes y %s un %s?",
		"registra mi peso de 80 kg y %s mi %s",
		"%s... ¡%s!",
		"dime cómo voy, objetivo: %s %s de dieta",
		"HOLA, %s %s",
	}
	for _, v := range verbs {
		for _, n := range nouns {
			for _, tpl := range templates {
				msg := fmt.Sprintf(tpl, v, n)
				assert.Equal(t, CreateWorkout, Recognize(msg).Kind, msg)
				msg = fmt.Sprintf(tpl, n, v)
				assert.Equal(t, CreateWorkout, Recognize(msg).Kind, msg)
			}
		}
	}
}

func TestRecognize_NutritionPlanForMuscleGain(t *testing.T) {
	r := Recognize("Necesito un plan de nutrición para ganar músculo")
	assert.Equal(t, CreateNutrition, r.Kind)
	assert.Equal(t, "muscle_gain", r.Params["goal"])
}

func TestRecognize_LogCurrentWeight(t *testing.T) {
	r := Recognize("Registra mi peso actual de 75 kg")
	assert.Equal(t, LogProgress, r.Kind)
	assert.Equal(t, float64(75), r.Params["weight"])
}

func TestRecognize_Kinds(t *testing.T) {
	tests := []struct {
		msg    string
		kind   Kind
		params map[string]any
	}{
		{
			msg:    "Crea una rutina de 4 días para ganar masa muscular, soy principiante",
			kind:   CreateWorkout,
			params: map[string]any{"days": 4, "goal": "muscle_gain", "level": "beginner"},
		},
		{
			msg:    "Genera un entrenamiento de fuerza de 45 minutos, tres días por semana",
			kind:   CreateWorkout,
			params: map[string]any{"days": 3, "goal": "strength", "duration": 45},
		},
		{
			msg:    "Dame una rutina para correr",
			kind:   CreateWorkout,
			params: map[string]any{"goal": "endurance"},
		},
		{
			msg:    "Crea una dieta vegana sin gluten de 2000 calorías para perder peso",
			kind:   CreateNutrition,
			params: map[string]any{"goal": "weight_loss", "calories": 2000, "restrictions": []string{"vegan", "gluten_free"}},
		},
		{
			msg:    "Anota mi peso: 80,5 kg y 18% de grasa",
			kind:   LogProgress,
			params: map[string]any{"weight": 80.5, "body_fat": float64(18)},
		},
		{
			msg:    "Hoy corrí 30 minutos y quemé 300 calorías",
			kind:   LogWorkout,
			params: map[string]any{"duration": 30, "calories": 300},
		},
		{
			msg:    "Registra que terminé mi entrenamiento de una hora",
			kind:   LogWorkout,
			params: map[string]any{"duration": 60},
		},
		{msg: "Muéstrame mis rutinas", kind: ViewWorkouts},
		{msg: "Quiero ver mis entrenamientos", kind: ViewWorkouts},
		{msg: "¿Cuáles son mis planes de nutrición?", kind: ViewNutrition},
		{msg: "¿Cómo voy con mi peso?", kind: ViewProgress},
		{msg: "Muéstrame mis objetivos", kind: ViewGoals},
		{
			msg:    "Quiero llegar a 70 kg en 3 meses",
			kind:   SetGoal,
			params: map[string]any{"target_weight": float64(70), "weeks": 12},
		},
		{
			msg:    "Mi objetivo es perder 5 kilos en 10 semanas",
			kind:   SetGoal,
			params: map[string]any{"goal": "weight_loss", "weeks": 10},
		},
		{
			msg:    "Mido 1,75 y tengo 30 años",
			kind:   UpdateProfile,
			params: map[string]any{"height": float64(175), "age": 30},
		},
		{
			msg:    "Actualiza mi perfil: soy avanzado",
			kind:   UpdateProfile,
			params: map[string]any{"level": "advanced"},
		},
		{msg: "Muestra mi perfil", kind: ViewProfile},
		{
			msg:    "¿Cómo se hace una sentadilla?",
			kind:   ExerciseInfo,
			params: map[string]any{"exercise": "sentadilla"},
		},
		{
			msg:    "¿Qué es el press de banca?",
			kind:   ExerciseInfo,
			params: map[string]any{"exercise": "press de banca"},
		},
		{msg: "Estoy muy desanimado, no tengo ganas de nada", kind: Motivation},
		{msg: "¿Qué debo comer antes de entrenar?", kind: NutritionAdvice},
		{msg: "¿Cuántas series debo hacer para pecho?", kind: WorkoutAdvice},
		{msg: "Ayuda", kind: Help},
		{msg: "¿Qué puedes hacer?", kind: Help},
		{msg: "¡Hola!", kind: Greeting},
		{msg: "Buenos días", kind: Greeting},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			r := Recognize(tt.msg)
			require.Equal(t, tt.kind, r.Kind)
			for name, want := range tt.params {
				assert.Equal(t, want, r.Params[name], "param %s", name)
			}
		})
	}
}

func TestRecognize_GoalWishNeedsFigure(t *testing.T) {
	tests := []struct {
		msg  string
		kind Kind
	}{
		{"quiero perder peso", GeneralAdvice},
		{"Quiero mantener mi peso", GeneralAdvice},
		{"Me gustaría ganar músculo", WorkoutAdvice},
		{"Quiero perder 5 kilos en 2 meses", SetGoal},
		{"Me gustaría pesar 68", SetGoal},
		{"Quisiera ganar fuerza en 12 semanas", SetGoal},
		{"Mi meta es ganar músculo", SetGoal},
		{"Mi objetivo es mantener mi peso", SetGoal},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.kind, Recognize(tt.msg).Kind)
		})
	}

	r := Recognize("Quiero perder 5 kilos en 2 meses")
	assert.Equal(t, "weight_loss", r.Params["goal"])
	assert.Equal(t, 8, r.Params["weeks"])

	r = Recognize("Me gustaría pesar 68")
	assert.Equal(t, float64(68), r.Params["target_weight"])
}

func TestRecognize_Fallback(t *testing.T) {
	for _, msg := range []string{"", "   ", "¿Qué tiempo hace mañana?", "1234"} {
		r := Recognize(msg)
		assert.Equal(t, GeneralAdvice, r.Kind, msg)
		assert.Equal(t, FallbackConfidence, r.Confidence)
		assert.NotNil(t, r.Params)
		assert.Empty(t, r.Params)
	}
}

func TestRecognize_ParamsOnlyFromMatchedRule(t *testing.T) {
	// Greeting has no extractors, so the number is not reported.
	r := Recognize("hola 80 kg")
	assert.Equal(t, Greeting, r.Kind)
	assert.Empty(t, r.Params)
}

func TestRecognize_OutOfRangeValuesDropped(t *testing.T) {
	r := Recognize("crea una rutina de 30 días")
	assert.Equal(t, CreateWorkout, r.Kind)
	_, ok := r.Int("days")
	assert.False(t, ok)
}

func TestResultAccessors(t *testing.T) {
	r := Result{Params: map[string]any{"days": 3, "weight": 70.5, "goal": "strength", "restrictions": []string{"keto"}}}

	d, ok := r.Int("days")
	assert.True(t, ok)
	assert.Equal(t, 3, d)

	f, ok := r.Float("days")
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	w, ok := r.Float("weight")
	assert.True(t, ok)
	assert.Equal(t, 70.5, w)

	g, ok := r.String("goal")
	assert.True(t, ok)
	assert.Equal(t, "strength", g)

	assert.Equal(t, []string{"keto"}, r.Strings("restrictions"))
	assert.Nil(t, r.Strings("missing"))

	_, ok = r.String("missing")
	assert.False(t, ok)
}

func TestCustomRules(t *testing.T) {
	c := New([]Rule{{Kind: Help, Require: [][]string{{"socorro"}}, Confidence: 0.4}})
	assert.Equal(t, Help, c.Recognize("¡Socorro!").Kind)
	assert.Equal(t, 0.4, c.Recognize("socorro").Confidence)
	assert.Equal(t, GeneralAdvice, c.Recognize("hola").Kind)
}

func TestKindsCoverRules(t *testing.T) {
	known := map[Kind]bool{}
	for _, k := range Kinds {
		known[k] = true
	}
	for _, r := range DefaultRules {
		assert.True(t, known[r.Kind], "rule kind %s missing from Kinds", r.Kind)
		assert.Greater(t, r.Confidence, FallbackConfidence)
	}
}
