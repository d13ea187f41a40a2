package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/internal/registry"
)

const testLinkRegistry = `{
	"categories": {"motivation": {"name": "Motivation Links"}},
	"linkTypes": [
		{
			"id": "service-supports-goal",
			"name": "Service supports Goal",
			"category": "motivation",
			"sourceLayers": ["02-business-layer"],
			"targetLayer": "01-motivation",
			"fieldPaths": ["motivation.supports-goals"],
			"cardinality": "array"
		}
	]
}`

const testPredicateRegistry = `{
	"relationshipTypes": [
		{
			"id": "rel-depends-on",
			"predicate": "depends-on",
			"semantics": {"directionality": "unidirectional", "cardinality": "one-to-many"}
		}
	]
}`

const testMotivationLayer = `goals:
  - id: goal-1
    type: goal
    name: Fast checkout
`

const testBusinessLayer = `businessServices:
  - id: service-1
    name: Order Service
    motivation:
      supports-goals:
        - goal-1
  - id: service-2
    name: Billing Service
    motivation:
      supports-goals:
        - goal-gone
`

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	modelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "01-motivation.yaml"), []byte(testMotivationLayer), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "02-business-layer.yaml"), []byte(testBusinessLayer), 0o644))

	catalog, err := registry.ParseCatalog([]byte(testLinkRegistry))
	require.NoError(t, err)
	predicates, err := registry.ParsePredicateCatalog([]byte(testPredicateRegistry))
	require.NoError(t, err)

	cfg := &config.Config{
		Server:     config.ServerConfig{Host: "localhost", Port: 8095},
		Model:      config.ModelConfig{Dir: modelDir, Watch: false},
		Validation: config.ValidationConfig{MaxHops: 5},
	}

	server, err := New(cfg, catalog, predicates)
	require.NoError(t, err)
	return server
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["elements"])
}

func TestGetStats(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/stats")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(2), body["total_links"])
	assert.Equal(t, float64(3), body["total_elements"])
}

func TestListLinks(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/links")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []linkJSON
	decodeBody(t, rec, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "service-supports-goal", body[0].TypeID)
	assert.Equal(t, "supports-goals", body[0].Predicate)
}

func TestListLinks_FilterByUnknownType(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/links?type=no-such-type")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []linkJSON
	decodeBody(t, rec, &body)
	assert.Empty(t, body)
}

func TestListBrokenLinks(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/links/broken")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]interface{}
	decodeBody(t, rec, &body)
	require.Len(t, body, 1)
	assert.Equal(t, []interface{}{"goal-gone"}, body[0]["missing_targets"])
}

func TestGetElementLinks(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/elements/goal-1/links")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]linkJSON
	decodeBody(t, rec, &body)
	assert.Empty(t, body["outgoing"])
	require.Len(t, body["incoming"], 1)
	assert.Equal(t, "service-1", body["incoming"][0].SourceID)
}

func TestGetConnected(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/elements/service-1/connected")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []string
	decodeBody(t, rec, &body)
	assert.Equal(t, []string{"goal-1"}, body)
}

func TestGetConnected_UnknownElement(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/elements/nope/connected")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Equal(t, "element not found", apiErr.Message)
}

func TestFindPath(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/path?from=service-1&to=goal-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(1), body["total_distance"])
	assert.Equal(t, "service-1 -[supports-goals]-> goal-1", body["description"])
}

func TestFindPath_NoRoute(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/path?from=goal-1&to=service-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindPath_MissingParameters(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/path?from=service-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindPath_InvalidMaxHops(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/path?from=service-1&to=goal-1&max_hops=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindPath_All(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/path?from=service-1&to=goal-1&all=true")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]interface{}
	decodeBody(t, rec, &body)
	require.Len(t, body, 1)
}

func TestRunValidation(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/validate")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary struct {
			TotalIssues int  `json:"total_issues"`
			Errors      int  `json:"errors"`
			StrictMode  bool `json:"strict_mode"`
		} `json:"summary"`
		Issues []map[string]interface{} `json:"issues"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 1, body.Summary.TotalIssues)
	assert.Equal(t, 1, body.Summary.Errors)
	assert.False(t, body.Summary.StrictMode)
	require.Len(t, body.Issues, 1)
	assert.Equal(t, "missing_target", body.Issues[0]["type"])
}

func TestRunValidation_StrictOverride(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/validate?strict=true")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, true, summary["strict_mode"])
}

func TestListLinkTypes(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/registry/link-types")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]interface{}
	decodeBody(t, rec, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "service-supports-goal", body[0]["id"])
}

func TestListPredicates(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/registry/predicates")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]interface{}
	decodeBody(t, rec, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "depends-on", body[0]["predicate"])
}

func TestReloadPicksUpChanges(t *testing.T) {
	s := setupTestServer(t)

	extra := `applications:
  - id: app-1
`
	require.NoError(t, os.WriteFile(filepath.Join(s.config.Model.Dir, "03-application-layer.yaml"), []byte(extra), 0o644))
	s.Reload()

	rec := doRequest(t, s, http.MethodGet, "/api/v1/stats")
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(4), body["total_elements"])
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/no-such-route")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}
