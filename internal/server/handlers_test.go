package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// testServer builds a Server with just enough wiring for handler-level
// validation tests. Requests that pass validation need a database and
// are covered by integration tests.
func testServer() *Server {
	return &Server{validator: validator.New()}
}

func TestHandleCreatePreview_InvalidBody(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/previews", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.handleCreatePreview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestHandleCreatePreview_MissingProfileID(t *testing.T) {
	s := testServer()

	body := `{
		"profile": {"full_name": "Jane Doe"},
		"job": {"id": "7b1c6a3e-9f42-4d1b-8a77-2f0c3d9e5b11", "title": "Engineer"}
	}`
	req := httptest.NewRequest("POST", "/previews", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCreatePreview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "profile.id is required")
}

func TestHandleCreatePreview_MissingJobID(t *testing.T) {
	s := testServer()

	body := `{
		"profile": {"id": "550e8400-e29b-41d4-a716-446655440000", "full_name": "Jane Doe"},
		"job": {"title": "Engineer"}
	}`
	req := httptest.NewRequest("POST", "/previews", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCreatePreview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job.id is required")
}

func TestHandleFeedback_InvalidBody(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	s.handleFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFeedback_MissingFields(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	s.handleFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestHandleFeedback_UnknownAction(t *testing.T) {
	s := testServer()

	body := `{
		"candidate_id": "550e8400-e29b-41d4-a716-446655440000",
		"job_id": "7b1c6a3e-9f42-4d1b-8a77-2f0c3d9e5b11",
		"action": "PROMOTE"
	}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown action: PROMOTE")
}

func TestFeedbackWeightKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "padded duplicate collapses onto one key",
			input:    []string{"Python ", "Python", " Python"},
			expected: []string{"Python"},
		},
		{
			name:     "blank names dropped",
			input:    []string{"", "  ", "Go"},
			expected: []string{"Go"},
		},
		{
			name:     "order of first occurrence preserved",
			input:    []string{"Kubernetes", "Go", "Kubernetes"},
			expected: []string{"Kubernetes", "Go"},
		},
		{
			name:     "empty input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feedbackWeightKeys(tt.input))
		})
	}
}

func TestHandleExportGraph_MissingProfileID(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/graphs/export", strings.NewReader(`{"profile": {}}`))
	rec := httptest.NewRecorder()

	s.handleExportGraph(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "profile.id is required")
}

func TestHandleHealth(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestWithCORS_Options(t *testing.T) {
	s := testServer()

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("OPTIONS", "/previews", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestExtractValidationErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(struct {
		Name string `validate:"required"`
	}{})

	msg := extractValidationErrors(err)
	assert.Contains(t, msg, "validation error")
	assert.Contains(t, msg, "Name")
}
