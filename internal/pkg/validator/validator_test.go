package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPercentage(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"0", 0, true},
		{"100", 100, true},
		{"87.5", 87.5, true},
		{" 90 ", 90, true},
		{"100.1", 100.1, false},
		{"-1", -1, false},
		{"ninety", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := IsPercentage(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("12345"))
	assert.False(t, IsNumeric("12.5"))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-02-28")
	assert.True(t, ok)
	assert.Equal(t, 28, date.Day())

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)

	_, ok = IsValidDate("28/02/2025")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "is required"},
		{Field: "status", Message: "must be 'pending' or 'paid'"},
	}

	assert.Equal(t, "month: is required; status: must be 'pending' or 'paid'", errs.Error())
	assert.Equal(t, map[string]string{
		"month":  "is required",
		"status": "must be 'pending' or 'paid'",
	}, errs.ToMap())
}
