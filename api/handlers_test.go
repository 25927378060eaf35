package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbaltazar/go-match-engine/api"
	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/engine"
	testutil "github.com/hbaltazar/go-match-engine/internal/testing"
	"github.com/hbaltazar/go-match-engine/model"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *engine.Engine) {
	gin.SetMode(gin.TestMode)
	eng := testutil.CreateTestEngine(t)
	router := gin.New()
	api.SetupRoutes(router, eng)
	return router, eng
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJobID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	jobID, _ := resp["job_id"].(string)
	require.NotEmpty(t, jobID, "response should carry a job_id: %s", w.Body.String())
	return jobID
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCreateProject_InvalidBody(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(t, router, http.MethodPost, "/projects", map[string]interface{}{
		"name":             "bad",
		"volume_threshold": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestGetProject_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(t, router, http.MethodGet, "/projects/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PROJECT_NOT_FOUND")
}

func TestGetReport_NoRunYet(t *testing.T) {
	router, eng := setupTestRouter(t)
	testutil.CreateTestProject(t, eng, "fresh")

	w := performRequest(t, router, http.MethodGet, "/projects/fresh/report", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NO_RUN_AVAILABLE")
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	router, eng := setupTestRouter(t)

	// Create the project
	w := performRequest(t, router, http.MethodPost, "/projects", config.MatchSettings{Name: "viaduct"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	testutil.WaitForJobCompletion(t, eng, decodeJobID(t, w), testutil.DefaultJobPollingOptions())

	w = performRequest(t, router, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "viaduct")

	// Load elements into both sides
	design := []model.ElementRecord{
		testutil.CubeRecord("d1", 0),
		testutil.CubeRecord("d2", 10),
	}
	w = performRequest(t, router, http.MethodPut, "/projects/viaduct/elements/design", design)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	testutil.WaitForJobCompletion(t, eng, decodeJobID(t, w), testutil.DefaultJobPollingOptions())

	reference := []model.ElementRecord{testutil.CubeRecord("r1", 0)}
	w = performRequest(t, router, http.MethodPut, "/projects/viaduct/elements/reference", reference)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	testutil.WaitForJobCompletion(t, eng, decodeJobID(t, w), testutil.DefaultJobPollingOptions())

	w = performRequest(t, router, http.MethodGet, "/projects/viaduct", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"design_elements":2`)
	assert.Contains(t, w.Body.String(), `"reference_elements":1`)

	// Fetch a single element from each side
	w = performRequest(t, router, http.MethodGet, "/projects/viaduct/elements/design/d1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"d1"`)

	w = performRequest(t, router, http.MethodGet, "/projects/viaduct/elements/reference/r1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodGet, "/projects/viaduct/elements/design/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ELEMENT_NOT_FOUND")

	// Run the matching pass
	w = performRequest(t, router, http.MethodPost, "/projects/viaduct/_match", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	job := testutil.WaitForJobCompletion(t, eng, decodeJobID(t, w), testutil.DefaultJobPollingOptions())
	assert.Equal(t, model.JobTypeMatchRun, job.Type)

	// Fetch the report
	w = performRequest(t, router, http.MethodGet, "/projects/viaduct/report", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report model.MatchSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.MatchedCount)
	require.NotNil(t, report.Results[0].Matched)
	assert.Equal(t, "r1", report.Results[0].Matched.ID)
	assert.Nil(t, report.Results[1].Matched)

	// Project stats reflect the run
	w = performRequest(t, router, http.MethodGet, "/projects/viaduct/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"matched_count":1`)

	// Delete the project
	w = performRequest(t, router, http.MethodDelete, "/projects/viaduct", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	testutil.WaitForJobCompletion(t, eng, decodeJobID(t, w), testutil.DefaultJobPollingOptions())
	assert.NotContains(t, eng.ListProjects(), "viaduct")
}

func TestElementValidationOverHTTP(t *testing.T) {
	router, eng := setupTestRouter(t)
	testutil.CreateTestProject(t, eng, "viaduct")

	// Unknown side
	w := performRequest(t, router, http.MethodPut, "/projects/viaduct/elements/sideways", []model.ElementRecord{testutil.CubeRecord("d1", 0)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Element without ID
	w = performRequest(t, router, http.MethodPut, "/projects/viaduct/elements/design", []model.ElementRecord{{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestJobEndpoints(t *testing.T) {
	router, eng := setupTestRouter(t)
	testutil.CreateTestProject(t, eng, "viaduct")
	testutil.SeedTestElements(t, eng, "viaduct")

	w := performRequest(t, router, http.MethodPost, "/projects/viaduct/_match", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	jobID := decodeJobID(t, w)
	testutil.WaitForJobCompletion(t, eng, jobID, testutil.DefaultJobPollingOptions())

	w = performRequest(t, router, http.MethodGet, "/jobs/"+jobID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	w = performRequest(t, router, http.MethodGet, "/jobs/unknown-job", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, router, http.MethodGet, "/projects/viaduct/jobs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), jobID)

	w = performRequest(t, router, http.MethodGet, "/jobs/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"metrics"`)
	assert.Contains(t, w.Body.String(), `"success_rate"`)
	assert.Contains(t, w.Body.String(), `"current_workload"`)
}
