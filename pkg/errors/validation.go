package errors

import (
	"strings"

	"notedeck/pkg/models"
)

// ValidationResult holds validation results
type ValidationResult struct {
	IsValid bool
	Errors  []*AppError
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(err *AppError) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, err)
}

// GetFirstError returns the first error or nil
func (vr *ValidationResult) GetFirstError() *AppError {
	if len(vr.Errors) > 0 {
		return vr.Errors[0]
	}
	return nil
}

// Validator provides validation utilities
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTitle validates that a title is present and non-empty
func (v *Validator) ValidateTitle(title string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if strings.TrimSpace(title) == "" {
		result.AddError(New(ErrTypeValidation, "TITLE_REQUIRED", "title is required and cannot be empty"))
	}

	return result
}

// ValidateTodoType validates a todo type against the fixed catalog
func (v *Validator) ValidateTodoType(t models.TodoType) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if !t.IsValid() {
		result.AddError(Newf(ErrTypeValidation, "TYPE_INVALID",
			"invalid todo type %q, must be one of: %s", t, joinTypes(models.AllTodoTypes)))
	}

	return result
}

// ValidatePriority validates a priority value
func (v *Validator) ValidatePriority(p models.Priority) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if !p.IsValid() {
		result.AddError(Newf(ErrTypeValidation, "PRIORITY_INVALID",
			"invalid priority %q, must be one of: low, medium, high, urgent", p))
	}

	return result
}

// ValidateHabitFrequency validates a habit frequency value
func (v *Validator) ValidateHabitFrequency(f models.HabitFrequency) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if !f.IsValid() {
		result.AddError(Newf(ErrTypeValidation, "FREQUENCY_INVALID",
			"invalid habit frequency %q, must be one of: daily, weekly, monthly", f))
	}

	return result
}

func joinTypes(types []models.TodoType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
