package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"notblank,max=100"`
}

type testSet struct {
	Name string `json:"name" validate:"required"`
	Sets int    `json:"sets" validate:"gte=0,lte=20"`
}

type testPlanRequest struct {
	Name     string    `json:"name" validate:"required"`
	Date     string    `json:"date" validate:"omitempty,dateformat"`
	Level    string    `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Sessions []testSet `json:"sessions" validate:"dive"`
}

func TestValidator_Register(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       testRegisterRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid",
			req:       testRegisterRequest{Email: "ana@example.com", Password: "password123", Name: "Ana"},
			wantError: false,
		},
		{
			name:      "missing email",
			req:       testRegisterRequest{Password: "password123", Name: "Ana"},
			wantError: true,
			errorMsg:  "email es obligatorio",
		},
		{
			name:      "bad email",
			req:       testRegisterRequest{Email: "ana", Password: "password123", Name: "Ana"},
			wantError: true,
			errorMsg:  "email debe ser un email válido",
		},
		{
			name:      "short password",
			req:       testRegisterRequest{Email: "ana@example.com", Password: "short", Name: "Ana"},
			wantError: true,
			errorMsg:  "password debe tener al menos 8 caracteres",
		},
		{
			name:      "blank name",
			req:       testRegisterRequest{Email: "ana@example.com", Password: "password123", Name: "   "},
			wantError: true,
			errorMsg:  "name es obligatorio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidator_NestedFields(t *testing.T) {
	v := New()

	err := v.Validate(testPlanRequest{
		Name:     "Plan",
		Date:     "2026-02-30",
		Level:    "expert",
		Sessions: []testSet{{Name: "A", Sets: 3}, {Name: "", Sets: 50}},
	})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Tag
	}
	assert.Equal(t, "dateformat", fields["date"])
	assert.Equal(t, "oneof", fields["level"])
	assert.Equal(t, "required", fields["sessions[1].name"])
	assert.Equal(t, "lte", fields["sessions[1].sets"])
	assert.NotContains(t, fields, "sessions[0].name")
}

func TestValidator_DateFormat(t *testing.T) {
	v := New()

	for _, d := range []string{"2026-01-31", "2024-02-29"} {
		assert.NoError(t, v.Validate(testPlanRequest{Name: "x", Date: d}), d)
	}
	for _, d := range []string{"31-01-2026", "2026-13-01", "2025-02-29", "2026/01/01"} {
		assert.Error(t, v.Validate(testPlanRequest{Name: "x", Date: d}), d)
	}
}
