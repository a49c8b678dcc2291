package assistant

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const greetingBody = "Soy tu entrenador virtual. ¿En qué te ayudo hoy? Puedo crear rutinas y planes de nutrición, registrar tu progreso o resolver tus dudas."

const greetingText = "¡Hola! " + greetingBody

const helpText = `Esto es lo que puedo hacer por ti:
• Crear rutinas: "Crea una rutina de 4 días para ganar fuerza"
• Crear planes de nutrición: "Necesito un plan de nutrición vegetariano de 2000 calorías"
• Registrar tu progreso: "Registra mi peso actual de 75 kg"
• Registrar entrenamientos: "He hecho 45 minutos de cardio"
• Ver tus rutinas, planes, objetivos o progreso: "Muéstrame mis rutinas"
• Fijar objetivos: "Quiero perder 5 kilos en 10 semanas"
• Actualizar tu perfil: "Mido 175 cm y tengo 30 años"
• Explicar ejercicios: "¿Cómo se hace la sentadilla?"
• Darte consejos y motivación cuando lo necesites`

// formatNumber prints v with at most one decimal and a comma separator.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return strings.Replace(s, ".", ",", 1)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orUnknown[T any](v *T, format func(T) string) string {
	if v == nil {
		return "sin indicar"
	}
	return format(*v)
}
