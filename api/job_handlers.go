package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hbaltazar/go-match-engine/internal/engine"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	if jobManager, ok := api.engine.(services.JobManager); ok {
		job, err := jobManager.GetJob(jobID)
		if err != nil {
			SendJobNotFoundError(c, jobID)
			return
		}

		c.JSON(http.StatusOK, job)
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
	}
}

// CancelJobHandler requests cooperative cancellation of a running job. The
// run keeps the results computed so far and persists the partial report.
func (api *API) CancelJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
		return
	}

	if err := jobManager.CancelJob(jobID); err != nil {
		if _, getErr := jobManager.GetJob(jobID); getErr != nil {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendError(c, http.StatusConflict, ErrorCodeInvalidRequest, "Failed to cancel job: "+err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Cancellation requested for job '" + jobID + "'",
		"job_id":  jobID,
	})
}

// ListJobsHandler handles requests to list jobs for a project
func (api *API) ListJobsHandler(c *gin.Context) {
	projectName := c.Param("projectName")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	if jobManager, ok := api.engine.(services.JobManager); ok {
		jobs := jobManager.ListJobs(projectName, statusFilter)
		c.JSON(http.StatusOK, gin.H{
			"jobs":         jobs,
			"project_name": projectName,
			"total":        len(jobs),
		})
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
	}
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if engineWithMetrics, ok := api.engine.(*engine.Engine); ok {
		// Get metrics (already returns a copy without mutex)
		metrics := engineWithMetrics.GetJobMetrics()

		// Add computed metrics
		response := gin.H{
			"metrics":          metrics,
			"success_rate":     engineWithMetrics.GetJobSuccessRate(),
			"current_workload": engineWithMetrics.GetCurrentWorkload(),
		}

		c.JSON(http.StatusOK, response)
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job metrics not supported by this engine")
	}
}
