// Package api provides the HTTP surface of the matching engine and
// validation utilities for request handling.
package api

import (
	"fmt"
	"strings"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateProjectName validates a project name parameter
func ValidateProjectName(projectName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if projectName == "" {
		result.AddError("projectName", "Project name is required")
		return result
	}

	if strings.TrimSpace(projectName) != projectName {
		result.AddError("projectName", "Project name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateMatchSettings validates match settings for project creation or
// update. Defaults are applied before validation, so a minimal settings body
// with just a name is valid.
func ValidateMatchSettings(settings *config.MatchSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Match settings are required")
		return result
	}

	if settings.Name == "" {
		result.AddError("name", "Project name is required")
	}

	settings.ApplyDefaults()

	for _, problem := range settings.Validate() {
		result.AddError("settings", problem)
	}

	return result
}

// ValidateElementRecords validates a slice of element records for loading
func ValidateElementRecords(records []model.ElementRecord) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(records) == 0 {
		result.AddError("elements", "No elements provided")
		return result
	}

	seen := make(map[string]int, len(records))
	for i, record := range records {
		id := strings.TrimSpace(record.Element.ID)
		if id == "" {
			result.AddError("elements", fmt.Sprintf("Element at index %d must have a non-empty 'id' field", i))
			continue
		}
		if first, dup := seen[id]; dup {
			result.AddError("elements", fmt.Sprintf("Element at index %d duplicates ID '%s' from index %d", i, id, first))
			continue
		}
		seen[id] = i
	}

	return result
}

// ValidateElementSide validates the side path parameter of element loading
func ValidateElementSide(side string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch side {
	case "design", "reference":
	default:
		result.AddError("side", "Element side must be 'design' or 'reference'")
	}
	return result
}
