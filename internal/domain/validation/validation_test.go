package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDescription_Rejections(t *testing.T) {
	v := NewValidator(500, 400)

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "description cannot be empty"},
		{"whitespace only", "   \t\n ", "description cannot be empty"},
		{"over max length", strings.Repeat("a", 501), "description cannot exceed 500 characters"},
		{"over max length after trim", "  " + strings.Repeat("a", 501) + "  ", "description cannot exceed 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateDescription(tt.input)
			assert.False(t, res.Valid)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.wantErr, res.Errors[0])
			assert.Error(t, res.Err())
		})
	}
}

func TestValidateDescription_Accepts(t *testing.T) {
	v := NewValidator(500, 400)

	tests := []struct {
		name         string
		input        string
		wantWarnings int
	}{
		{"plain", "Buy groceries", 0},
		{"single rune", "x", 0},
		{"exactly max length", strings.Repeat("a", 500), 1}, // near-limit warning only
		{"near limit", strings.Repeat("a", 401), 1},
		{"at warn threshold", strings.Repeat("a", 400), 0},
		{"surrounding whitespace", "  Buy groceries  ", 1},
		{"near limit with whitespace", " " + strings.Repeat("a", 450) + " ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateDescription(tt.input)
			assert.True(t, res.Valid)
			assert.Empty(t, res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarnings)
			assert.NoError(t, res.Err())
		})
	}
}

func TestValidateDescription_LengthCountsRunes(t *testing.T) {
	v := NewValidator(5, 4)

	res := v.ValidateDescription("héllo")
	assert.True(t, res.Valid)

	res = v.ValidateDescription("héllo!")
	assert.False(t, res.Valid)
}

func TestValidateDescription_Deterministic(t *testing.T) {
	v := NewValidator(500, 400)

	first := v.ValidateDescription("  repeatable input  ")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, v.ValidateDescription("  repeatable input  "))
	}
}

func TestNewValidator_Defaults(t *testing.T) {
	v := NewValidator(0, -1)
	assert.Equal(t, DefaultMaxLength, v.MaxLength)
	assert.Equal(t, DefaultWarnLength, v.WarnLength)
}

func TestError_MessageJoinsReasons(t *testing.T) {
	err := &Error{Reasons: []string{"a", "b"}}
	assert.Equal(t, "invalid description: a; b", err.Error())
}
