package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/hbaltazar/go-match-engine/model"
)

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchRun, "test-project", map[string]string{
		"operation": "test",
	})

	if jobID == "" {
		t.Error("Expected non-empty job ID")
	}

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get created job: %v", err)
	}

	if job.Type != model.JobTypeMatchRun {
		t.Errorf("Expected job type %s, got %s", model.JobTypeMatchRun, job.Type)
	}

	if job.Status != model.JobStatusPending {
		t.Errorf("Expected job status %s, got %s", model.JobStatusPending, job.Status)
	}

	if job.ProjectName != "test-project" {
		t.Errorf("Expected project name 'test-project', got %s", job.ProjectName)
	}
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchRun, "test-project", nil)

	// Execute a simple job that updates progress
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		manager.UpdateJobProgress(jobID, 50, 100, "Halfway done")
		time.Sleep(10 * time.Millisecond) // Simulate work
		manager.UpdateJobProgress(jobID, 100, 100, "Completed")
		return nil
	})

	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	waitForTerminalStatus(t, manager, jobID, 2*time.Second)

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get job after execution: %v", err)
	}

	if job.Status != model.JobStatusCompleted {
		t.Errorf("Expected job status %s, got %s", model.JobStatusCompleted, job.Status)
	}

	if job.Progress == nil {
		t.Error("Expected job progress to be set")
	} else {
		if job.Progress.Current != 100 {
			t.Errorf("Expected progress current 100, got %d", job.Progress.Current)
		}
		if job.Progress.Total != 100 {
			t.Errorf("Expected progress total 100, got %d", job.Progress.Total)
		}
	}
}

func TestJobManager_CancelJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchRun, "test-project", nil)

	started := make(chan struct{})
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		close(started)
		<-ctx.Done() // Block until cancelled
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	<-started
	if err := manager.CancelJob(jobID); err != nil {
		t.Fatalf("Failed to cancel job: %v", err)
	}

	waitForTerminalStatus(t, manager, jobID, 2*time.Second)

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get job after cancellation: %v", err)
	}
	if job.Status != model.JobStatusCancelled {
		t.Errorf("Expected job status %s, got %s", model.JobStatusCancelled, job.Status)
	}
}

func TestJobManager_CancelJobNotRunning(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchRun, "test-project", nil)
	if err := manager.CancelJob(jobID); err == nil {
		t.Error("Expected error cancelling a pending job")
	}

	if err := manager.CancelJob("no-such-job"); err == nil {
		t.Error("Expected error cancelling an unknown job")
	}
}

func TestJobManager_Metrics(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	okID := manager.CreateJob(model.JobTypeMatchRun, "test-project", nil)
	if err := manager.ExecuteJob(okID, func(ctx context.Context, job *model.Job) error {
		return nil
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}
	waitForTerminalStatus(t, manager, okID, 2*time.Second)

	failID := manager.CreateJob(model.JobTypeMatchRun, "test-project", nil)
	if err := manager.ExecuteJob(failID, func(ctx context.Context, job *model.Job) error {
		return context.DeadlineExceeded
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}
	waitForTerminalStatus(t, manager, failID, 2*time.Second)

	cancelledID := manager.CreateJob(model.JobTypeMatchRun, "test-project", nil)
	if err := manager.ExecuteJob(cancelledID, func(ctx context.Context, job *model.Job) error {
		return context.Canceled
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}
	waitForTerminalStatus(t, manager, cancelledID, 2*time.Second)

	metrics := manager.GetMetrics()
	if metrics.JobsCreated != 3 {
		t.Errorf("Expected 3 created jobs, got %d", metrics.JobsCreated)
	}
	if metrics.JobsCompleted != 1 {
		t.Errorf("Expected 1 completed job, got %d", metrics.JobsCompleted)
	}
	if metrics.JobsFailed != 1 {
		t.Errorf("Expected 1 failed job, got %d", metrics.JobsFailed)
	}
	if metrics.JobsCancelled != 1 {
		t.Errorf("Expected 1 cancelled job, got %d", metrics.JobsCancelled)
	}

	// Cancelled jobs stay out of the rate: 1 completed of 2 decided
	if rate := manager.GetJobSuccessRate(); rate != 0.5 {
		t.Errorf("Expected success rate 0.5, got %f", rate)
	}

	if workload := manager.GetCurrentWorkload(); workload != 0 {
		t.Errorf("Expected no active jobs, got %d", workload)
	}
}

func TestJobManager_ListJobsByProject(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	manager.CreateJob(model.JobTypeMatchRun, "project-a", nil)
	manager.CreateJob(model.JobTypeLoadElements, "project-a", nil)
	manager.CreateJob(model.JobTypeMatchRun, "project-b", nil)

	jobsA := manager.ListJobs("project-a", nil)
	if len(jobsA) != 2 {
		t.Errorf("Expected 2 jobs for project-a, got %d", len(jobsA))
	}

	pending := model.JobStatusPending
	jobsB := manager.ListJobs("project-b", &pending)
	if len(jobsB) != 1 {
		t.Errorf("Expected 1 pending job for project-b, got %d", len(jobsB))
	}
}

func waitForTerminalStatus(t *testing.T, manager *Manager, jobID string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		job, err := manager.GetJob(jobID)
		if err != nil {
			t.Fatalf("Failed to get job while waiting: %v", err)
		}
		switch job.Status {
		case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Job %s did not reach a terminal status within %v", jobID, timeout)
}
