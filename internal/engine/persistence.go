package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/persistence"
	"github.com/hbaltazar/go-match-engine/model"
)

const (
	dataDirPerm        = 0755
	settingsFile       = "settings.gob"
	designStoreFile    = "design_elements.gob"
	referenceStoreFile = "reference_elements.gob"
	lastRunFile        = "last_run.gob"
)

func (e *Engine) projectPath(name string) string {
	return filepath.Join(e.dataDir, name)
}

// loadProjectsFromDisk loads all projects from the data directory.
func (e *Engine) loadProjectsFromDisk() {
	log.Printf("Loading projects from disk: %s", e.dataDir)
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No projects loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		projectName := item.Name()
		projectPath := e.projectPath(projectName)
		log.Printf("Attempting to load project: %s", projectName)

		var settings config.MatchSettings
		settingsPath := filepath.Join(projectPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for project %s from %s: %v. Skipping this project.", projectName, settingsPath, err)
			continue
		}

		// Basic validation, settings name should match directory name
		if settings.Name != projectName {
			log.Printf("Warning: Project name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this project.", settings.Name, projectName, projectPath)
			continue
		}

		instance, err := NewProjectInstance(settings)
		if err != nil {
			log.Printf("Error creating project instance for loaded project %s: %v. Skipping.", projectName, err)
			continue
		}

		e.loadStore(instance.DesignStore, filepath.Join(projectPath, designStoreFile), projectName, "design")
		e.loadStore(instance.ReferenceStore, filepath.Join(projectPath, referenceStoreFile), projectName, "reference")

		var lastRun model.MatchSet
		lastRunPath := filepath.Join(projectPath, lastRunFile)
		if err := persistence.LoadGob(lastRunPath, &lastRun); err == nil {
			instance.setLastRun(&lastRun)
		} else if err != os.ErrNotExist {
			log.Printf("Warning: Failed to load last run report for project %s from %s: %v. Proceeding without it.", projectName, lastRunPath, err)
		}

		e.projects[projectName] = instance
		log.Printf("Successfully loaded project: %s", projectName)
	}
}

func (e *Engine) loadStore(target interface{}, path, projectName, side string) {
	if err := persistence.LoadGob(path, target); err != nil && err != os.ErrNotExist {
		log.Printf("Warning: Failed to load %s store for project %s from %s: %v. Proceeding with empty store.", side, projectName, path, err)
	} else if err == os.ErrNotExist {
		log.Printf("Info: %s store file %s not found for project %s. Initializing empty store.", side, path, projectName)
	}
}

// PersistProjectData requests a project instance to save its current state.
// This should be called after modifications (e.g., element loading).
func (e *Engine) PersistProjectData(projectName string) error {
	e.mu.RLock()
	instance, exists := e.projects[projectName]
	e.mu.RUnlock()

	if !exists {
		return fmt.Errorf("cannot persist: project '%s' not found", projectName)
	}
	return e.persistProjectUnsafe(projectName, instance)
}

// persistProjectUnsafe persists a project instance to disk.
// This method assumes the caller holds whatever lock protects the instance
// lookup; the stores guard their own gob encoding.
func (e *Engine) persistProjectUnsafe(name string, instance *ProjectInstance) error {
	projectPath := e.projectPath(name)
	if err := os.MkdirAll(projectPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for project %s: %w", name, err)
	}

	if err := persistence.SaveGob(filepath.Join(projectPath, settingsFile), instance.Settings()); err != nil {
		return fmt.Errorf("failed to save settings for project %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(projectPath, designStoreFile), instance.DesignStore); err != nil {
		return fmt.Errorf("failed to save design store for %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(projectPath, referenceStoreFile), instance.ReferenceStore); err != nil {
		return fmt.Errorf("failed to save reference store for %s: %w", name, err)
	}
	if lastRun, err := instance.LastRun(); err == nil {
		if err := persistence.SaveGob(filepath.Join(projectPath, lastRunFile), lastRun); err != nil {
			return fmt.Errorf("failed to save last run report for %s: %w", name, err)
		}
	} else {
		// No run to report; drop any stale file from before the stores changed.
		_ = os.Remove(filepath.Join(projectPath, lastRunFile))
	}
	return nil
}

// persistSettingsUnsafe persists only the settings file for a project.
func (e *Engine) persistSettingsUnsafe(name string, settings config.MatchSettings) error {
	projectPath := e.projectPath(name)
	if err := os.MkdirAll(projectPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for project %s: %w", name, err)
	}
	return persistence.SaveGob(filepath.Join(projectPath, settingsFile), settings)
}
