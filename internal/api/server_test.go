package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parishav/announcer/internal/config"
	"github.com/parishav/announcer/internal/selector"
	"github.com/parishav/announcer/internal/service"
)

func newTestServer(t *testing.T) *APIServer {
	t.Helper()

	cfg := &config.Config{
		LibraryDir:    t.TempDir(),
		HistoryWindow: 1,
		MaxResults:    5,
		Port:          0,
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	svc.SetSelector(selector.NewWithRand(rand.New(rand.NewSource(1))))

	return NewAPIServer(svc, 0)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestCreateAndListTemplates(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/templates", strings.NewReader(`{"body":"Hello INSERTDATE"}`))
	s.withMiddleware(s.handleTemplates)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/templates", nil)
	s.withMiddleware(s.handleTemplates)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("Expected success response")
	}
	items, ok := resp.Data.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("Expected 1 template, got %v", resp.Data)
	}
}

func TestGetTemplateNotFoundStatus(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/templates/42", nil)
	s.withMiddleware(s.handleTemplatesWithID)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing template, got %d", rec.Code)
	}
}

func TestTemplateIDValidation(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/templates/abc", nil)
	s.withMiddleware(s.handleTemplatesWithID)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestGetTemplateRawFormat(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/templates", strings.NewReader(`{"body":"raw body text"}`))
	s.withMiddleware(s.handleTemplates)(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/templates/1?format=raw", nil)
	s.withMiddleware(s.handleTemplatesWithID)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "raw body text" {
		t.Errorf("Expected raw body, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "1.txt") {
		t.Errorf("Expected attachment filename 1.txt, got %q", got)
	}
}

func TestUpdateAndDeleteTemplate(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/templates", strings.NewReader(`{"body":"v1"}`))
	s.withMiddleware(s.handleTemplates)(rec, req)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("PUT", "/api/v1/templates/1", strings.NewReader(`{"body":"v2"}`))
	s.withMiddleware(s.handleTemplatesWithID)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on update, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/v1/templates/1", nil)
	s.withMiddleware(s.handleTemplatesWithID)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on delete, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/templates/1", nil)
	s.withMiddleware(s.handleTemplatesWithID)(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestGenerateReturnsTextAndAppendsHistory(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/templates", strings.NewReader(`{"body":"On INSERTDATE"}`))
	s.withMiddleware(s.handleTemplates)(rec, req)

	body := `{"scheduled_start":"2024-11-17T10:30:00Z","link":"https://youtu.be/x","info":"Evening Prayer"}`
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/generate", strings.NewReader(body))
	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Unexpected data shape %v", resp.Data)
	}
	if data["text"] != "On 17th November 2024" {
		t.Errorf("Unexpected generated text %q", data["text"])
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/history", nil)
	s.withMiddleware(s.handleHistory)(rec, req)
	resp = decodeResponse(t, rec)
	history, ok := resp.Data.([]interface{})
	if !ok || len(history) != 1 {
		t.Errorf("Expected 1 history entry, got %v", resp.Data)
	}
}

func TestGenerateExhaustedStillOK(t *testing.T) {
	s := newTestServer(t)

	// Empty library: generation resolves to the exhausted message text
	body := `{"scheduled_start":"2024-11-17T10:30:00Z","link":"","info":""}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/generate", strings.NewReader(body))
	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if !strings.Contains(data["text"].(string), "No templates available") {
		t.Errorf("Expected exhausted message in text, got %v", data["text"])
	}
}

func TestGenerateRejectsBadTimestamp(t *testing.T) {
	s := newTestServer(t)

	body := `{"scheduled_start":"yesterday","link":"","info":""}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/generate", strings.NewReader(body))
	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad timestamp, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	s.withMiddleware(s.handleHealth)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", data["status"])
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/v1/templates", nil)
	s.withMiddleware(s.handleTemplates)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS headers on preflight response")
	}
}
