// Package testing provides utilities and helpers for testing the matching engine.
package testing

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/internal/engine"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/services"
)

// TestDirRegistry tracks test directories for cleanup
type TestDirRegistry struct {
	mu   sync.Mutex
	dirs []string
}

var globalTestDirRegistry = &TestDirRegistry{}

// RegisterTestDir registers a test directory for cleanup
func (r *TestDirRegistry) RegisterTestDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dir)
}

// CleanupAll removes all registered test directories
func (r *TestDirRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dir := range r.dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("Warning: Failed to remove test directory %s: %v\n", dir, err)
		}
	}
	r.dirs = nil
}

// CreateTestEngine creates a new engine instance for testing with automatic cleanup
func CreateTestEngine(t *testing.T) *engine.Engine {
	testDir := fmt.Sprintf("./test_data_%d", time.Now().UnixNano())
	globalTestDirRegistry.RegisterTestDir(testDir)

	eng := engine.NewEngine(testDir)
	t.Cleanup(eng.Close)
	return eng
}

// CreateTestProject creates a test project with default settings
func CreateTestProject(t *testing.T, eng *engine.Engine, projectName string) config.MatchSettings {
	settings := config.MatchSettings{
		Name:            projectName,
		VolumeThreshold: 0.0001,
		Geometry:        config.GeometryOptions{DetailLevel: config.DetailFine},
		WidthAttribute:  "b",
		HeightAttribute: "h",
	}

	err := eng.CreateProject(settings)
	require.NoError(t, err, "Failed to create test project")

	return settings
}

// CubeRecord builds an element record carrying a unit cube at the given origin.
func CubeRecord(id string, origin float64) model.ElementRecord {
	return model.ElementRecord{
		Element: model.Element{ID: id},
		Primitives: []geometry.Box{
			*geometry.NewBox(
				[3]float64{origin, origin, origin},
				[3]float64{origin + 1, origin + 1, origin + 1},
			),
		},
	}
}

// SeedTestElements loads a small paired scene into both sides of a project:
// three design cubes and two reference cubes, of which two design elements
// overlap a reference element.
func SeedTestElements(t *testing.T, eng *engine.Engine, projectName string) {
	project, err := eng.GetProject(projectName)
	require.NoError(t, err, "Failed to get project accessor")

	err = project.AddDesignElements([]model.ElementRecord{
		CubeRecord("d1", 0),
		CubeRecord("d2", 10),
		CubeRecord("d3", 50),
	})
	require.NoError(t, err, "Failed to add design elements")

	err = project.AddReferenceElements([]model.ElementRecord{
		CubeRecord("r1", 0),
		CubeRecord("r2", 10),
	})
	require.NoError(t, err, "Failed to add reference elements")
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 100 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var job *model.Job
	var err error

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err = jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed:
				t.Fatalf("Job %s failed: %s", jobID, job.Error)
			case model.JobStatusCancelled:
				t.Fatalf("Job %s was cancelled", jobID)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// WaitForJobStatus polls a job until it reaches the given terminal status.
func WaitForJobStatus(t *testing.T, jobManager services.JobManager, jobID string, want model.JobStatus, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not reach status %s within %v timeout", jobID, want, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")
			if job.Status == want {
				return job
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedProject string) {
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedProject, job.ProjectName, "Job project name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// CleanupTestDirs should be called in TestMain to clean up all test directories
func CleanupTestDirs() {
	globalTestDirRegistry.CleanupAll()
}

// TestMain ensures proper cleanup of test directories
func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()

	// Cleanup test directories
	CleanupTestDirs()

	// Exit with the test result code
	os.Exit(code)
}
