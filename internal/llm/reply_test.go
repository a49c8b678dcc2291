package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReply_FencedBlock(t *testing.T) {
	raw := "```json\n{\"message\":\"x\",\"data\":{\"a\":1}}\n```"
	got := ParseReply(raw)
	assert.Equal(t, ParsedReply{Message: "x", Data: map[string]any{"a": float64(1)}}, got)
}

func TestParseReply_NoJSON(t *testing.T) {
	raw := "Bebe agua y duerme ocho horas."
	got := ParseReply(raw)
	assert.Equal(t, raw, got.Message)
	assert.NotNil(t, got.Data)
	assert.Empty(t, got.Data)
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantMsg  string
		wantData map[string]any
	}{
		{
			name:     "whole reply",
			raw:      `  {"message":"hola","data":{"name":"Plan"}}  `,
			wantMsg:  "hola",
			wantData: map[string]any{"name": "Plan"},
		},
		{
			name:     "bare fence",
			raw:      "Aquí va:\n```\n{\"message\":\"m\",\"data\":{}}\n```",
			wantMsg:  "m",
			wantData: map[string]any{},
		},
		{
			name:     "fence without message uses prose",
			raw:      "Tu plan:\n```json\n{\"data\":{\"name\":\"Fuerza\"}}\n```",
			wantMsg:  "Tu plan:",
			wantData: map[string]any{"name": "Fuerza"},
		},
		{
			name:     "brace span inside prose",
			raw:      `Te propongo esto {"message":"listo","data":{"days":3}} y suerte.`,
			wantMsg:  "listo",
			wantData: map[string]any{"days": float64(3)},
		},
		{
			name:     "braces inside strings",
			raw:      `Nota: {"message":"usa {llaves}","data":{"k":"}"}}`,
			wantMsg:  "usa {llaves}",
			wantData: map[string]any{"k": "}"},
		},
		{
			name:     "skips unparseable span",
			raw:      `{no es json} pero {"message":"sí"}`,
			wantMsg:  "sí",
			wantData: map[string]any{},
		},
		{
			name:     "no data key uses object minus message",
			raw:      `{"message":"ok","name":"Plan","days_per_week":4}`,
			wantMsg:  "ok",
			wantData: map[string]any{"name": "Plan", "days_per_week": float64(4)},
		},
		{
			name:     "object without any message",
			raw:      `{"name":"Plan"}`,
			wantMsg:  `{"name":"Plan"}`,
			wantData: map[string]any{"name": "Plan"},
		},
		{
			name:     "broken fence falls through to raw",
			raw:      "```json\n{\"message\": \n```",
			wantMsg:  "```json\n{\"message\": \n```",
			wantData: map[string]any{},
		},
		{
			name:     "top-level array is not an object",
			raw:      `[1,2,3]`,
			wantMsg:  `[1,2,3]`,
			wantData: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.raw)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, tt.wantData, got.Data)
		})
	}
}
