package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "name",
		Message: "is required",
	}
	assert.Equal(t, "name: is required", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   ValidationErrors
		expected string
	}{
		{
			name:     "empty errors",
			errors:   ValidationErrors{},
			expected: "",
		},
		{
			name: "single error",
			errors: ValidationErrors{
				{Field: "name", Message: "is required"},
			},
			expected: "name: is required",
		},
		{
			name: "multiple errors",
			errors: ValidationErrors{
				{Field: "name", Message: "is required"},
				{Field: "name", Message: "is invalid"},
			},
			expected: "name: is required; name: is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errors.Error())
		})
	}
}

func TestValidateUnitName(t *testing.T) {
	valid := []string{"nginx", "nginx.service", "getty@tty1.service", "systemd-fsck@dev-disk-by\\x2duuid.service", "my_app:1"}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateUnitName(name))
		})
	}

	invalid := []string{"", "foo bar", "foo|bar", "foo\nbar", "-foo"}
	for _, name := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			err := ValidateUnitName(name)
			require.Error(t, err)
			var verrs ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}
