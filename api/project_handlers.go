package api

import (
	stderrors "errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/engine"
	"github.com/hbaltazar/go-match-engine/internal/errors"
)

func isNotFound(err error) bool {
	return stderrors.Is(err, errors.ErrProjectNotFound)
}

func isAlreadyExists(err error) bool {
	return stderrors.Is(err, errors.ErrProjectAlreadyExists)
}

func isInvalidInput(err error) bool {
	return stderrors.Is(err, errors.ErrInvalidInput)
}

// CreateProjectHandler handles the request to create a new project.
// Request Body: config.MatchSettings
func (api *API) CreateProjectHandler(c *gin.Context) {
	var settings config.MatchSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	if result := ValidateMatchSettings(&settings); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	// Create project asynchronously when the engine supports jobs
	var jobID string
	var err error
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err = concreteEngine.CreateProjectAsync(settings)
	} else {
		err = api.engine.CreateProject(settings)
	}

	if err != nil {
		switch {
		case isAlreadyExists(err):
			SendProjectExistsError(c, settings.Name)
		case isInvalidInput(err):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to create project: "+err.Error())
		}
		return
	}

	if jobID != "" {
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Project creation started for '" + settings.Name + "'",
			"job_id":  jobID,
		})
	} else {
		c.JSON(http.StatusCreated, gin.H{"message": "Project '" + settings.Name + "' created successfully"})
	}
}

// ListProjectsHandler returns the names of all projects.
func (api *API) ListProjectsHandler(c *gin.Context) {
	names := api.engine.ListProjects()
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{
		"projects": names,
		"total":    len(names),
	})
}

// GetProjectHandler returns a project's settings and element counts.
func (api *API) GetProjectHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings":           project.Settings(),
		"design_elements":    len(project.DesignElements()),
		"reference_elements": len(project.ReferenceElements()),
	})
}

// UpdateProjectSettingsHandler updates the settings of an existing project.
// Request Body: config.MatchSettings (name must match or be empty)
func (api *API) UpdateProjectSettingsHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	var settings config.MatchSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	if err := api.engine.UpdateProjectSettings(projectName, settings); err != nil {
		switch {
		case isNotFound(err):
			SendProjectNotFoundError(c, projectName)
		case isInvalidInput(err):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to update settings: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings for project '" + projectName + "' updated"})
}

// DeleteProjectHandler deletes a project and its persisted data.
func (api *API) DeleteProjectHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	var jobID string
	var err error
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err = concreteEngine.DeleteProjectAsync(projectName)
	} else {
		err = api.engine.DeleteProject(projectName)
	}

	if err != nil {
		if isNotFound(err) {
			SendProjectNotFoundError(c, projectName)
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to delete project: "+err.Error())
		return
	}

	if jobID != "" {
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Project deletion started for '" + projectName + "'",
			"job_id":  jobID,
		})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Project '" + projectName + "' deleted"})
	}
}
