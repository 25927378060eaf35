package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
//
// Expected geometric outcomes (an element with no solid, a disjoint pair, a
// demoted match) are represented as data values by the matching packages,
// never as errors; the taxonomy here covers the orchestration and host-glue
// surfaces only.
var (
	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectAlreadyExists is returned when trying to create a project that already exists
	ErrProjectAlreadyExists = errors.New("project already exists")

	// ErrElementNotFound is returned when an element is not found
	ErrElementNotFound = errors.New("element not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input or configuration validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRunAvailable is returned when a project has no completed matching run
	ErrNoRunAvailable = errors.New("no matching run available")
)

// ProjectNotFoundError represents a project not found error with context
type ProjectNotFoundError struct {
	ProjectName string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project named '%s' not found", e.ProjectName)
}

func (e *ProjectNotFoundError) Is(target error) bool {
	return target == ErrProjectNotFound
}

// NewProjectNotFoundError creates a new ProjectNotFoundError
func NewProjectNotFoundError(projectName string) *ProjectNotFoundError {
	return &ProjectNotFoundError{ProjectName: projectName}
}

// ProjectAlreadyExistsError represents a project already exists error with context
type ProjectAlreadyExistsError struct {
	ProjectName string
}

func (e *ProjectAlreadyExistsError) Error() string {
	return fmt.Sprintf("project named '%s' already exists", e.ProjectName)
}

func (e *ProjectAlreadyExistsError) Is(target error) bool {
	return target == ErrProjectAlreadyExists
}

// NewProjectAlreadyExistsError creates a new ProjectAlreadyExistsError
func NewProjectAlreadyExistsError(projectName string) *ProjectAlreadyExistsError {
	return &ProjectAlreadyExistsError{ProjectName: projectName}
}

// ElementNotFoundError represents an element not found error with context
type ElementNotFoundError struct {
	ElementID   string
	ProjectName string
}

func (e *ElementNotFoundError) Error() string {
	if e.ProjectName != "" {
		return fmt.Sprintf("element with ID '%s' not found in project '%s'", e.ElementID, e.ProjectName)
	}
	return fmt.Sprintf("element with ID '%s' not found", e.ElementID)
}

func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// NewElementNotFoundError creates a new ElementNotFoundError
func NewElementNotFoundError(elementID string, projectName ...string) *ElementNotFoundError {
	err := &ElementNotFoundError{ElementID: elementID}
	if len(projectName) > 0 {
		err.ProjectName = projectName[0]
	}
	return err
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NoRunAvailableError represents a request for a run report before any run completed
type NoRunAvailableError struct {
	ProjectName string
}

func (e *NoRunAvailableError) Error() string {
	return fmt.Sprintf("project '%s' has no completed matching run", e.ProjectName)
}

func (e *NoRunAvailableError) Is(target error) bool {
	return target == ErrNoRunAvailable
}

// NewNoRunAvailableError creates a new NoRunAvailableError
func NewNoRunAvailableError(projectName string) *NoRunAvailableError {
	return &NoRunAvailableError{ProjectName: projectName}
}
