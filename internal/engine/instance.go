package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/errors"
	"github.com/hbaltazar/go-match-engine/internal/matching"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/services"
	"github.com/hbaltazar/go-match-engine/store"
)

// ProjectInstance holds all components and services for a single matching
// project: the two element stores, the matcher wired over them, and the last
// completed run report.
// It implements the services.ProjectAccessor interface.
type ProjectInstance struct {
	mu             sync.RWMutex
	settings       config.MatchSettings
	DesignStore    *store.ElementStore
	ReferenceStore *store.ElementStore
	matcher        *matching.Service
	lastRun        *model.MatchSet
}

// NewProjectInstance creates and initializes a new ProjectInstance.
func NewProjectInstance(settings config.MatchSettings) (*ProjectInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("project name cannot be empty in settings")
	}

	designStore := store.NewElementStore()
	referenceStore := store.NewElementStore()

	matcherService, err := matching.NewService(designStore, referenceStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher service: %w", err)
	}

	return &ProjectInstance{
		settings:       settings,
		DesignStore:    designStore,
		ReferenceStore: referenceStore,
		matcher:        matcherService,
	}, nil
}

// AddDesignElements loads element records into the design-side store.
func (p *ProjectInstance) AddDesignElements(records []model.ElementRecord) error {
	return p.DesignStore.Add(records)
}

// AddReferenceElements loads element records into the reference-side store.
func (p *ProjectInstance) AddReferenceElements(records []model.ElementRecord) error {
	return p.ReferenceStore.Add(records)
}

// DeleteAllElements clears both stores and drops the last run report, which
// refers to elements that no longer exist.
func (p *ProjectInstance) DeleteAllElements() error {
	p.DesignStore.DeleteAll()
	p.ReferenceStore.DeleteAll()
	p.mu.Lock()
	p.lastRun = nil
	p.mu.Unlock()
	return nil
}

// RunMatching performs a full matching pass with the project's current
// settings and records the result as the last run. Cancelled runs keep
// their partial results.
func (p *ProjectInstance) RunMatching(ctx context.Context) (model.MatchSet, error) {
	settings := p.Settings()

	set, err := p.matcher.Run(ctx, p.DesignStore.Elements(), p.ReferenceStore.Elements(), settings)
	if err != nil {
		return set, err
	}

	p.mu.Lock()
	p.lastRun = &set
	p.mu.Unlock()
	return set, nil
}

// LastRun returns the report of the most recent matching run.
func (p *ProjectInstance) LastRun() (model.MatchSet, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.lastRun == nil {
		return model.MatchSet{}, errors.NewNoRunAvailableError(p.settings.Name)
	}
	return *p.lastRun, nil
}

// DesignElements returns the design-side elements in load order.
func (p *ProjectInstance) DesignElements() []model.Element {
	return p.DesignStore.Elements()
}

// ReferenceElements returns the reference-side elements in load order.
func (p *ProjectInstance) ReferenceElements() []model.Element {
	return p.ReferenceStore.Elements()
}

// DesignElement returns one design-side element record by ID.
func (p *ProjectInstance) DesignElement(elementID string) (model.ElementRecord, error) {
	record, found := p.DesignStore.Get(elementID)
	if !found {
		return model.ElementRecord{}, errors.NewElementNotFoundError(elementID, p.Settings().Name)
	}
	return record, nil
}

// ReferenceElement returns one reference-side element record by ID.
func (p *ProjectInstance) ReferenceElement(elementID string) (model.ElementRecord, error) {
	record, found := p.ReferenceStore.Get(elementID)
	if !found {
		return model.ElementRecord{}, errors.NewElementNotFoundError(elementID, p.Settings().Name)
	}
	return record, nil
}

// Settings returns a copy of the project's configuration settings.
func (p *ProjectInstance) Settings() config.MatchSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// UpdateSettings replaces the project's settings. The engine validates and
// persists them before calling this.
func (p *ProjectInstance) UpdateSettings(settings config.MatchSettings) {
	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()
}

// SetProgressFunc installs a progress callback on the underlying matcher.
func (p *ProjectInstance) SetProgressFunc(fn services.ProgressFunc) {
	p.matcher.SetProgressFunc(fn)
}

// setLastRun installs a restored run report, used when loading from disk.
func (p *ProjectInstance) setLastRun(set *model.MatchSet) {
	p.mu.Lock()
	p.lastRun = set
	p.mu.Unlock()
}
