package services

import (
	"context"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/model"
)

// GeometrySource resolves the primitive solids belonging to an element. It
// is the read-only geometry surface a host model exposes to the engine; the
// returned primitives are owned by the caller, which releases them when the
// extraction provider is done with them.
type GeometrySource interface {
	ResolveGeometry(el model.Element, opts config.GeometryOptions) []geometry.Solid
}

// AttributeSource resolves scalar attributes and type labels for an element.
type AttributeSource interface {
	// ResolveScalarAttribute returns the named scalar attribute, reporting
	// whether the element carries it.
	ResolveScalarAttribute(el model.Element, name string) (float64, bool)

	// ResolveTypeLabel returns the element's type label, e.g. "G9-99" or
	// "B4-40(fc 35)", reporting whether one exists.
	ResolveTypeLabel(el model.Element) (string, bool)
}

// HostModel combines the resolver surfaces one model exposes to the engine.
type HostModel interface {
	GeometrySource
	AttributeSource
}

// ResourceReclaimer is optionally implemented by host models whose geometry
// kernel accumulates unmanaged memory. The orchestrator invokes Reclaim
// periodically during long runs, between source items.
type ResourceReclaimer interface {
	Reclaim()
}

// ProgressFunc receives per-source-item progress during a matching run.
type ProgressFunc func(current, total int)

// Matcher runs one full correspondence pass from a source element collection
// to a candidate collection. The context cancels cooperatively at source
// item boundaries; results computed before cancellation are preserved in the
// returned MatchSet.
type Matcher interface {
	Run(ctx context.Context, sources, candidates []model.Element, settings config.MatchSettings) (model.MatchSet, error)
}

// ElementLoader defines operations for loading elements into a project's
// models.
type ElementLoader interface {
	AddDesignElements(records []model.ElementRecord) error
	AddReferenceElements(records []model.ElementRecord) error
	DeleteAllElements() error
}

// ProjectAccessor exposes one project's stores and matching entry point.
type ProjectAccessor interface {
	ElementLoader
	RunMatching(ctx context.Context) (model.MatchSet, error)
	LastRun() (model.MatchSet, error)
	DesignElements() []model.Element
	ReferenceElements() []model.Element
	DesignElement(elementID string) (model.ElementRecord, error)
	ReferenceElement(elementID string) (model.ElementRecord, error)
	Settings() config.MatchSettings
}

// ProjectManager manages the lifecycle of matching projects.
type ProjectManager interface {
	CreateProject(settings config.MatchSettings) error
	GetProject(name string) (ProjectAccessor, error)
	GetProjectSettings(name string) (config.MatchSettings, error)
	UpdateProjectSettings(name string, settings config.MatchSettings) error
	DeleteProject(name string) error
	ListProjects() []string
	PersistProjectData(projectName string) error
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(projectName string, status *model.JobStatus) []*model.Job
	CancelJob(jobID string) error
}
