package service

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Characters systemd accepts in unit names, plus the template separator.
	unitNameRegex = regexp.MustCompile(`^[a-zA-Z0-9:_.\\@-]+$`)
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidateUnitName checks that name can be handed to the service manager
// and recorded in history without breaking the line format.
func ValidateUnitName(name string) error {
	var errs ValidationErrors

	if name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "unit name is required"})
	} else if !unitNameRegex.MatchString(name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("invalid unit name %q: only alphanumeric, ':', '_', '.', '\\', '@' and '-' are allowed", name),
		})
	}
	if strings.HasPrefix(name, "-") {
		errs = append(errs, ValidationError{Field: "name", Message: "unit name must not start with '-'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
