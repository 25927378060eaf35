package engine

import (
	"context"
	"fmt"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/errors"
	"github.com/hbaltazar/go-match-engine/model"
)

// CreateProjectAsync creates a new project asynchronously.
func (e *Engine) CreateProjectAsync(settings config.MatchSettings) (string, error) {
	if settings.Name == "" {
		return "", errors.NewValidationError("name", "project name cannot be empty")
	}

	e.mu.RLock()
	if _, exists := e.projects[settings.Name]; exists {
		e.mu.RUnlock()
		return "", errors.NewProjectAlreadyExistsError(settings.Name)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeCreateProject, settings.Name, map[string]string{
		"operation": "create_project",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.createProjectUnsafe(settings)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start create project job: %w", err)
	}

	return jobID, nil
}

// DeleteProjectAsync deletes a project asynchronously.
func (e *Engine) DeleteProjectAsync(name string) (string, error) {
	e.mu.RLock()
	if _, exists := e.projects[name]; !exists {
		e.mu.RUnlock()
		return "", errors.NewProjectNotFoundError(name)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteProject, name, map[string]string{
		"operation": "delete_project",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.deleteProjectUnsafe(name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete project job: %w", err)
	}

	return jobID, nil
}

// ElementSide selects which store of a project element records go to.
type ElementSide string

const (
	DesignSide    ElementSide = "design"
	ReferenceSide ElementSide = "reference"
)

// AddElementsAsync loads element records into one side of a project
// asynchronously and persists the updated store.
func (e *Engine) AddElementsAsync(projectName string, side ElementSide, records []model.ElementRecord) (string, error) {
	if side != DesignSide && side != ReferenceSide {
		return "", errors.NewValidationError("side", fmt.Sprintf("unknown element side '%s'", side))
	}

	e.mu.RLock()
	if _, exists := e.projects[projectName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewProjectNotFoundError(projectName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeLoadElements, projectName, map[string]string{
		"operation":     "load_elements",
		"side":          string(side),
		"element_count": fmt.Sprintf("%d", len(records)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeAddElementsJob(projectName, side, records, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start load elements job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeAddElementsJob(projectName string, side ElementSide, records []model.ElementRecord, jobID string) error {
	e.mu.RLock()
	instance, exists := e.projects[projectName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewProjectNotFoundError(projectName)
	}

	e.jobManager.UpdateJobProgress(jobID, 0, len(records), "Loading elements")

	var err error
	if side == DesignSide {
		err = instance.AddDesignElements(records)
	} else {
		err = instance.AddReferenceElements(records)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s elements into project '%s': %w", side, projectName, err)
	}

	e.jobManager.UpdateJobProgress(jobID, len(records), len(records), "Elements loaded")

	if err := e.persistProjectUnsafe(projectName, instance); err != nil {
		return fmt.Errorf("failed to persist updated project '%s': %w", projectName, err)
	}
	return nil
}

// RunMatchingAsync starts a full matching run as a background job and
// returns the job ID. Progress tracks processed source elements. A
// cancelled run still persists the partial report before the job settles
// into the cancelled status.
func (e *Engine) RunMatchingAsync(projectName string) (string, error) {
	e.mu.RLock()
	instance, exists := e.projects[projectName]
	e.mu.RUnlock()

	if !exists {
		return "", errors.NewProjectNotFoundError(projectName)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeMatchRun, projectName, map[string]string{
		"operation": "match_run",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeMatchRunJob(ctx, projectName, instance, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start match run job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeMatchRunJob(ctx context.Context, projectName string, instance *ProjectInstance, jobID string) error {
	instance.SetProgressFunc(func(current, total int) {
		e.jobManager.UpdateJobProgress(jobID, current, total, "Matching source elements")
	})
	defer instance.SetProgressFunc(nil)

	set, err := instance.RunMatching(ctx)
	if err != nil {
		return fmt.Errorf("matching run for project '%s' failed: %w", projectName, err)
	}

	if err := e.persistProjectUnsafe(projectName, instance); err != nil {
		return fmt.Errorf("failed to persist run report for project '%s': %w", projectName, err)
	}

	if set.Cancelled {
		return context.Canceled
	}
	return nil
}

// DeleteAllElementsAsync clears both element stores of a project
// asynchronously.
func (e *Engine) DeleteAllElementsAsync(projectName string) (string, error) {
	e.mu.RLock()
	if _, exists := e.projects[projectName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewProjectNotFoundError(projectName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteElements, projectName, nil)

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		e.mu.RLock()
		instance, exists := e.projects[projectName]
		e.mu.RUnlock()
		if !exists {
			return errors.NewProjectNotFoundError(projectName)
		}
		if err := instance.DeleteAllElements(); err != nil {
			return fmt.Errorf("failed to delete elements from project '%s': %w", projectName, err)
		}
		return e.persistProjectUnsafe(projectName, instance)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete elements job: %w", err)
	}

	return jobID, nil
}
