package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hbaltazar/go-match-engine/services"
)

// API holds dependencies for API handlers, primarily the matching engine manager.
type API struct {
	engine services.ProjectManager
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.ProjectManager) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes for the matching engine.
func SetupRoutes(router *gin.Engine, engine services.ProjectManager) {
	apiHandler := NewAPI(engine)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.POST("/:jobId/cancel", apiHandler.CancelJobHandler)
	}

	// Project management routes
	projectRoutes := router.Group("/projects")
	{
		projectRoutes.POST("", apiHandler.CreateProjectHandler)                                 // Create a new project
		projectRoutes.GET("", apiHandler.ListProjectsHandler)                                   // List all projects
		projectRoutes.GET("/:projectName", apiHandler.GetProjectHandler)                        // Get project details
		projectRoutes.DELETE("/:projectName", apiHandler.DeleteProjectHandler)                  // Delete a project
		projectRoutes.PATCH("/:projectName/settings", apiHandler.UpdateProjectSettingsHandler)  // Update project settings
		projectRoutes.GET("/:projectName/stats", apiHandler.GetProjectStatsHandler)             // Get project statistics
		projectRoutes.GET("/:projectName/jobs", apiHandler.ListJobsHandler)                     // List jobs for a project
		projectRoutes.PUT("/:projectName/elements/:side", apiHandler.AddElementsHandler)        // Load elements into one side
		projectRoutes.GET("/:projectName/elements/:side/:elementId", apiHandler.GetElementHandler) // Get one element
		projectRoutes.DELETE("/:projectName/elements", apiHandler.DeleteAllElementsHandler)     // Delete all elements
		projectRoutes.POST("/:projectName/_match", apiHandler.RunMatchingHandler)               // Start a matching run
		projectRoutes.GET("/:projectName/report", apiHandler.GetLastRunHandler)                 // Get the last run report
		projectRoutes.GET("/:projectName/report/marks", apiHandler.GetMarkHistogramHandler)     // Mark histogram of the last run
	}
}

// HealthCheckHandler provides a basic health check endpoint.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"projects": len(api.engine.ListProjects()),
	})
}
