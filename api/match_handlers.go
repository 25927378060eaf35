package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hbaltazar/go-match-engine/internal/engine"
	"github.com/hbaltazar/go-match-engine/internal/stats"
	"github.com/hbaltazar/go-match-engine/model"
)

// RunMatchingHandler starts a matching run for a project. With a job-capable
// engine the run executes in the background and the response carries the job
// ID; cancellation goes through the jobs API.
func (api *API) RunMatchingHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.RunMatchingAsync(projectName)
		if err != nil {
			SendError(c, http.StatusInternalServerError, ErrorCodeMatchingFailed, "Failed to start matching run: "+err.Error())
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Matching run started for project '" + projectName + "'",
			"job_id":  jobID,
		})
		return
	}

	set, err := project.RunMatching(c.Request.Context())
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeMatchingFailed, "Matching run failed for project '"+projectName+"': "+err.Error())
		return
	}
	c.JSON(http.StatusOK, set)
}

// GetLastRunHandler returns the full report of the most recent matching run.
func (api *API) GetLastRunHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	lastRun, err := project.LastRun()
	if err != nil {
		SendNoRunAvailableError(c, projectName)
		return
	}
	c.JSON(http.StatusOK, lastRun)
}

// GetMarkHistogramHandler returns the per-mark match counts of the last run.
func (api *API) GetMarkHistogramHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	lastRun, err := project.LastRun()
	if err != nil {
		SendNoRunAvailableError(c, projectName)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id": lastRun.RunID,
		"marks":  stats.MarkHistogram(lastRun),
	})
}

// GetProjectStatsHandler returns element counts and the last run summary.
func (api *API) GetProjectStatsHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	var lastRun *model.MatchSet
	if set, err := project.LastRun(); err == nil {
		lastRun = &set
	}

	c.JSON(http.StatusOK, stats.ForProject(
		projectName,
		len(project.DesignElements()),
		len(project.ReferenceElements()),
		lastRun,
	))
}
