package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hbaltazar/go-match-engine/internal/engine"
	"github.com/hbaltazar/go-match-engine/model"
)

// AddElementsHandler handles loading element records into one side of a
// project. The ":side" path parameter selects the design or reference store.
// Request Body: []model.ElementRecord (or a single record)
func (api *API) AddElementsHandler(c *gin.Context) {
	projectName := c.Param("projectName")
	side := c.Param("side")

	if result := ValidateElementSide(side); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Failed to read request body: "+err.Error())
		return
	}

	// Accept either an array of records or a single record object.
	var records []model.ElementRecord
	if err := json.Unmarshal(body, &records); err != nil {
		var single model.ElementRecord
		if err := json.Unmarshal(body, &single); err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body. Expecting an element record or an array of element records")
			return
		}
		records = []model.ElementRecord{single}
	}

	if result := ValidateElementRecords(records); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	// Load elements asynchronously when the engine supports jobs
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.AddElementsAsync(projectName, engine.ElementSide(side), records)
		if err != nil {
			SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to start element loading: "+err.Error())
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":        "accepted",
			"message":       fmt.Sprintf("Element loading started for project '%s' (%d %s elements)", projectName, len(records), side),
			"job_id":        jobID,
			"element_count": len(records),
		})
		return
	}

	if side == "design" {
		err = project.AddDesignElements(records)
	} else {
		err = project.AddReferenceElements(records)
	}
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to load elements into project '"+projectName+"': "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d %s element(s) loaded into project '%s'", len(records), side, projectName)})
}

// GetElementHandler retrieves a specific element record by ID from one side
// of a project.
func (api *API) GetElementHandler(c *gin.Context) {
	projectName := c.Param("projectName")
	side := c.Param("side")
	elementID := c.Param("elementId")

	if result := ValidateElementSide(side); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	var record model.ElementRecord
	if side == "design" {
		record, err = project.DesignElement(elementID)
	} else {
		record, err = project.ReferenceElement(elementID)
	}
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeElementNotFound, "Element '"+elementID+"' not found in project '"+projectName+"'")
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteAllElementsHandler clears both element stores of a project.
func (api *API) DeleteAllElementsHandler(c *gin.Context) {
	projectName := c.Param("projectName")

	project, err := api.engine.GetProject(projectName)
	if err != nil {
		SendProjectNotFoundError(c, projectName)
		return
	}

	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.DeleteAllElementsAsync(projectName)
		if err != nil {
			SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to start element deletion: "+err.Error())
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": fmt.Sprintf("Element deletion started for project '%s'", projectName),
			"job_id":  jobID,
		})
		return
	}

	if err := project.DeleteAllElements(); err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to delete elements from project '"+projectName+"': "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All elements deleted from project '" + projectName + "'"})
}
