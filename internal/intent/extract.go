package intent

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Extractor pulls one named parameter out of normalized text.
type Extractor struct {
	Name    string
	Extract func(text string) (any, bool)
}

var numberWords = map[string]int{
	"un": 1, "una": 1, "uno": 1, "dos": 2, "tres": 3, "cuatro": 4, "cinco": 5,
	"seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10, "doce": 12,
}

const numberPattern = `(\d+(?:\.\d+)?|un|una|uno|dos|tres|cuatro|cinco|seis|siete|ocho|nueve|diez|doce)`

func parseNumber(s string) (float64, bool) {
	if n, ok := numberWords[s]; ok {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// firstNumber returns the first capture of the first pattern that matches.
func firstNumber(text string, patterns ...*regexp.Regexp) (float64, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if f, ok := parseNumber(m[1]); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func intIn(f float64, ok bool, lo, hi int) (any, bool) {
	n := int(f)
	if !ok || n < lo || n > hi {
		return nil, false
	}
	return n, true
}

func floatIn(f float64, ok bool, lo, hi float64) (any, bool) {
	if !ok || f < lo || f > hi {
		return nil, false
	}
	return f, true
}

// keywordTable maps the first matching keyword to a value.
type keywordTable []struct {
	value    string
	keywords []string
}

func (kt keywordTable) first(text string) (any, bool) {
	for _, entry := range kt {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.value, true
			}
		}
	}
	return nil, false
}

func (kt keywordTable) all(text string) (any, bool) {
	var out []string
	for _, entry := range kt {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				out = append(out, entry.value)
				break
			}
		}
	}
	return out, len(out) > 0
}

var (
	daysRE         = regexp.MustCompile(`\b` + numberPattern + ` (?:dias|veces|sesiones)\b`)
	weightRE       = regexp.MustCompile(`(\d+(?:\.\d+)?) ?(?:kg|kgs|kilos|kilogramos)\b`)
	weightAfterRE  = regexp.MustCompile(`\bpeso (?:actual |de |es de |es |hoy )*(\d+(?:\.\d+)?)\b`)
	bodyFatRE      = regexp.MustCompile(`(\d+(?:\.\d+)?) ?(?:%|por ?ciento) (?:de )?grasa`)
	bodyFatAfterRE = regexp.MustCompile(`grasa(?: corporal)? (?:de |del |es de |es |en )*(\d+(?:\.\d+)?) ?(?:%|por ?ciento)?`)
	minutesRE      = regexp.MustCompile(`\b` + numberPattern + ` ?(?:minutos|minuto|mins|min)\b`)
	hoursRE        = regexp.MustCompile(`\b` + numberPattern + ` ?(?:horas|hora|h)\b`)
	caloriesRE     = regexp.MustCompile(`(\d+(?:\.\d+)?) ?(?:kcal|calorias|cal)\b`)
	heightCmRE     = regexp.MustCompile(`(\d{2,3}(?:\.\d+)?) ?(?:cm|centimetros)\b`)
	heightMRE      = regexp.MustCompile(`(?:mido |altura (?:de |es de )?|estatura (?:de |es de )?)(\d\.\d{1,2})\b`)
	ageRE          = regexp.MustCompile(`(\d{1,3}) anos\b`)
	weeksRE        = regexp.MustCompile(`\b` + numberPattern + ` semanas?\b`)
	monthsRE       = regexp.MustCompile(`\b` + numberPattern + ` mes(?:es)?\b`)
	targetWeightRE = regexp.MustCompile(`(?:llegar a|pesar|bajar a|subir a|quedarme en|hasta|objetivo de|meta de) (?:los |unos )?(\d+(?:\.\d+)?) ?(?:kg|kgs|kilos|kilogramos)?\b`)
	exerciseRE     = regexp.MustCompile(`(?:como se hace|como hacer|como hago|como realizar|como se realiza|que es|explicame|explica|tecnica (?:de|del|para)|para que sirve|que musculos trabaja|informacion sobre) (?:el |la |los |las |un |una |del |de )?(?:ejercicio |ejercicios )?(?:de |del |el |la )?(.+?) $`)
)

var goalTable = keywordTable{
	{"muscle_gain", []string{"ganar musculo", "ganar masa", "masa muscular", "hipertrofia", "volumen", "aumentar musculo", "ganar peso"}},
	{"weight_loss", []string{"perder peso", "bajar de peso", "adelgazar", "quemar grasa", "perder grasa", "definir", "definicion", "bajar peso", "perder kilos", "bajar kilos"}},
	{"strength", []string{"fuerza", "powerlifting", "mas fuerte"}},
	{"endurance", []string{"resistencia", "maraton", "cardio", "correr", "aerobic"}},
	{"maintenance", []string{"mantener", "mantenimiento", "mantenerme"}},
	// Looser wording, checked only when nothing above matched.
	{"weight_loss", []string{"perder", "bajar", "adelgaz"}},
	{"muscle_gain", []string{"musculo", "ganar"}},
}

var levelTable = keywordTable{
	{"beginner", []string{"principiante", "novato", "empezando", "basico", "nunca he entrenado", "nuevo en"}},
	{"intermediate", []string{"intermedio"}},
	{"advanced", []string{"avanzado", "experto", "experimentado"}},
}

var restrictionTable = keywordTable{
	{"vegetarian", []string{"vegetarian"}},
	{"vegan", []string{"vegano", "vegana", "veganos", "veganas", " vegan "}},
	{"gluten_free", []string{"sin gluten", "celiac", "intolerante al gluten"}},
	{"lactose_free", []string{"sin lactosa", "intolerante a la lactosa", "intolerancia a la lactosa", "sin lacteos"}},
	{"keto", []string{"keto", "cetogenic"}},
}

var (
	extractDays = Extractor{"days", func(t string) (any, bool) {
		f, ok := firstNumber(t, daysRE)
		return intIn(f, ok, 1, 7)
	}}
	extractGoal   = Extractor{"goal", goalTable.first}
	extractLevel  = Extractor{"level", levelTable.first}
	extractWeight = Extractor{"weight", func(t string) (any, bool) {
		f, ok := firstNumber(t, weightRE, weightAfterRE)
		return floatIn(f, ok, 20, 400)
	}}
	extractBodyFat = Extractor{"body_fat", func(t string) (any, bool) {
		f, ok := firstNumber(t, bodyFatRE, bodyFatAfterRE)
		return floatIn(f, ok, 2, 70)
	}}
	extractDuration = Extractor{"duration", func(t string) (any, bool) {
		if f, ok := firstNumber(t, minutesRE); ok {
			return intIn(f, ok, 1, 1440)
		}
		f, ok := firstNumber(t, hoursRE)
		return intIn(f*60, ok, 1, 1440)
	}}
	extractCalories = Extractor{"calories", func(t string) (any, bool) {
		f, ok := firstNumber(t, caloriesRE)
		return intIn(f, ok, 50, 10000)
	}}
	extractRestrictions = Extractor{"restrictions", restrictionTable.all}
	extractHeight       = Extractor{"height", func(t string) (any, bool) {
		if f, ok := firstNumber(t, heightCmRE); ok {
			return floatIn(f, ok, 100, 250)
		}
		f, ok := firstNumber(t, heightMRE)
		return floatIn(math.Round(f*100), ok, 100, 250)
	}}
	extractAge = Extractor{"age", func(t string) (any, bool) {
		f, ok := firstNumber(t, ageRE)
		return intIn(f, ok, 10, 120)
	}}
	extractWeeks = Extractor{"weeks", func(t string) (any, bool) {
		if f, ok := firstNumber(t, weeksRE); ok {
			return intIn(f, ok, 1, 104)
		}
		f, ok := firstNumber(t, monthsRE)
		return intIn(f*4, ok, 1, 104)
	}}
	extractTargetWeight = Extractor{"target_weight", func(t string) (any, bool) {
		f, ok := firstNumber(t, targetWeightRE)
		return floatIn(f, ok, 20, 400)
	}}
	extractExercise = Extractor{"exercise", func(t string) (any, bool) {
		m := exerciseRE.FindStringSubmatch(t)
		if m == nil {
			return nil, false
		}
		name := strings.TrimSpace(m[1])
		return name, name != ""
	}}
)
