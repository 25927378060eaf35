// Package engine orchestrates matching projects: it owns the project
// registry, their on-disk persistence, and the background job manager that
// runs long operations.
package engine

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/errors"
	"github.com/hbaltazar/go-match-engine/internal/jobs"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/services"
)

const maxConcurrentJobs = 2

// Engine manages multiple matching projects.
// It implements the services.ProjectManager interface.
type Engine struct {
	mu         sync.RWMutex
	projects   map[string]*ProjectInstance
	dataDir    string
	jobManager *jobs.Manager
}

// NewEngine creates a new matching engine orchestrator and loads previously
// persisted projects from dataDir.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		projects:   make(map[string]*ProjectInstance),
		dataDir:    dataDir,
		jobManager: jobs.NewManager(maxConcurrentJobs),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new projects if loading fails.", dataDir, err)
	}
	eng.jobManager.Start()
	eng.loadProjectsFromDisk()
	return eng
}

// Close shuts the engine's background machinery down.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// CreateProject creates a new project with the given settings and persists it.
func (e *Engine) CreateProject(settings config.MatchSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createProjectUnsafe(settings)
}

// createProjectUnsafe assumes the caller holds the write lock.
func (e *Engine) createProjectUnsafe(settings config.MatchSettings) error {
	if settings.Name == "" {
		return errors.NewValidationError("name", "project name cannot be empty")
	}
	if _, exists := e.projects[settings.Name]; exists {
		return errors.NewProjectAlreadyExistsError(settings.Name)
	}

	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	instance, err := NewProjectInstance(settings)
	if err != nil {
		return fmt.Errorf("failed to create new project instance for '%s': %w", settings.Name, err)
	}

	if err := e.persistProjectUnsafe(settings.Name, instance); err != nil {
		return fmt.Errorf("failed to persist new project '%s': %w", settings.Name, err)
	}

	e.projects[settings.Name] = instance
	log.Printf("Project '%s' created and persisted.", settings.Name)
	return nil
}

// GetProject retrieves a project by its name.
func (e *Engine) GetProject(name string) (services.ProjectAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.projects[name]
	if !exists {
		return nil, errors.NewProjectNotFoundError(name)
	}
	return instance, nil
}

// GetProjectSettings retrieves the settings for a specific project.
func (e *Engine) GetProjectSettings(name string) (config.MatchSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.projects[name]
	if !exists {
		return config.MatchSettings{}, errors.NewProjectNotFoundError(name)
	}
	return instance.Settings(), nil
}

// UpdateProjectSettings updates the settings for an existing project and
// persists them. The project name itself cannot change.
func (e *Engine) UpdateProjectSettings(name string, newSettings config.MatchSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.projects[name]
	if !exists {
		return errors.NewProjectNotFoundError(name)
	}

	if newSettings.Name != "" && newSettings.Name != name {
		return errors.NewValidationError("name", fmt.Sprintf("cannot change project name from '%s' to '%s' during settings update", name, newSettings.Name))
	}
	newSettings.Name = name

	newSettings.ApplyDefaults()
	if problems := newSettings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	instance.UpdateSettings(newSettings)

	if err := e.persistSettingsUnsafe(name, newSettings); err != nil {
		log.Printf("CRITICAL: Failed to persist updated settings for project '%s'. In-memory settings updated, but disk is stale: %v", name, err)
		return fmt.Errorf("failed to save updated settings for project '%s': %w", name, err)
	}

	log.Printf("Settings for project '%s' updated and persisted.", name)
	return nil
}

// DeleteProject removes a project by its name from memory and disk.
func (e *Engine) DeleteProject(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteProjectUnsafe(name)
}

// deleteProjectUnsafe assumes the caller holds the write lock.
func (e *Engine) deleteProjectUnsafe(name string) error {
	if _, exists := e.projects[name]; !exists {
		// To be idempotent, if not in memory, check if it exists on disk to remove
		if _, err := os.Stat(e.projectPath(name)); os.IsNotExist(err) {
			return errors.NewProjectNotFoundError(name)
		}
	} else {
		delete(e.projects, name)
	}

	if err := os.RemoveAll(e.projectPath(name)); err != nil {
		return fmt.Errorf("failed to delete project data directory %s: %w", e.projectPath(name), err)
	}
	log.Printf("Project '%s' deleted from memory and disk.", name)
	return nil
}

// ListProjects returns a list of names of all existing projects.
func (e *Engine) ListProjects() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.projects))
	for name := range e.projects {
		names = append(names, name)
	}
	return names
}

// GetJob retrieves a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns all jobs for a project, optionally filtered by status.
func (e *Engine) ListJobs(projectName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(projectName, status)
}

// CancelJob requests cooperative cancellation of a running job.
func (e *Engine) CancelJob(jobID string) error {
	return e.jobManager.CancelJob(jobID)
}

// GetJobMetrics returns aggregate job execution metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of currently active jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
