// Package api provides a RESTful HTTP API server for the announcer.
//
// SYSTEM ARCHITECTURE ROLE:
// This module implements the HTTP interface layer of the system, providing a
// REST API with middleware support and standardized responses. It is the
// surface used by scripted integrations (overlay software, schedulers) that
// drive the announcement workflow without the TUI.
//
// KEY RESPONSIBILITIES:
// - Expose template management and announcement generation via RESTful endpoints
// - Implement middleware stack (logging, CORS, content type, panic recovery)
// - Standardize API responses with a consistent JSON envelope
// - Serve OpenAPI documentation at /api/docs and /api/openapi.json
//
// INTEGRATION POINTS:
// - internal/service/service.go: All operations delegate to the Service layer
// - internal/errors/handlers.go: APIServer.errorHandler (HTTPErrorHandler) formats error responses
//
// ENDPOINT STRUCTURE:
// - /api/v1/templates: Template CRUD operations
// - /api/v1/generate: Announcement generation (the three-outcome flow)
// - /api/v1/livestreams: Upcoming scheduled broadcasts
// - /api/v1/thumbnail: Cropped thumbnail download links
// - /api/v1/history: The selection log
// - /api/v1/health: System health monitoring
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/parishav/announcer/internal/errors"
	"github.com/parishav/announcer/internal/models"
	"github.com/parishav/announcer/internal/service"
)

// APIServer provides the HTTP API with middleware support
type APIServer struct {
	service      *service.Service
	errorHandler *errors.HTTPErrorHandler
	port         int
	server       *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int) *APIServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &APIServer{
		service:      svc,
		errorHandler: errors.NewHTTPErrorHandler(true),
		port:         port,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins serving HTTP requests with middleware
func (s *APIServer) Start() error {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/v1/templates", s.withMiddleware(s.handleTemplates))
	mux.HandleFunc("/api/v1/templates/", s.withMiddleware(s.handleTemplatesWithID))
	mux.HandleFunc("/api/v1/generate", s.withMiddleware(s.handleGenerate))
	mux.HandleFunc("/api/v1/livestreams", s.withMiddleware(s.handleLivestreams))
	mux.HandleFunc("/api/v1/thumbnail", s.withMiddleware(s.handleThumbnail))
	mux.HandleFunc("/api/v1/history", s.withMiddleware(s.handleHistory))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	// OpenAPI documentation
	mux.HandleFunc("/api/docs", s.withMiddleware(s.handleOpenAPI))
	mux.HandleFunc("/api/openapi.json", s.withMiddleware(s.handleOpenAPISpec))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)
	log.Printf("OpenAPI documentation: http://localhost:%d/api/docs", s.port)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	s.cancel()
	return s.server.Shutdown(ctx)
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		duration := time.Since(start)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, duration)
	}
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics and errors
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				appErr := errors.InternalError("Internal server error")
				s.errorHandler.WriteHTTPError(w, appErr)
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)

	// Use pretty-printed JSON for better readability
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Write(jsonData)
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

// templatePayload is the JSON shape templates are served as
type templatePayload struct {
	ID        int    `json:"id"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func toTemplatePayload(t *models.Template) templatePayload {
	payload := templatePayload{ID: t.ID, Body: t.Body}
	if !t.UpdatedAt.IsZero() {
		payload.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	}
	return payload
}

// handleTemplates handles /api/v1/templates
func (s *APIServer) handleTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.handleListTemplates(w, r)
	case "POST":
		s.handleCreateTemplate(w, r)
	default:
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
	}
}

// handleTemplatesWithID handles /api/v1/templates/{id}
func (s *APIServer) handleTemplatesWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/templates/")
	if path == "" {
		s.writeError(w, errors.ValidationError("Template id is required"))
		return
	}

	id, err := strconv.Atoi(path)
	if err != nil || id <= 0 {
		s.writeError(w, errors.ValidationError("Template id must be a positive integer"))
		return
	}

	switch r.Method {
	case "GET":
		s.handleGetTemplate(w, r, id)
	case "PUT":
		s.handleUpdateTemplate(w, r, id)
	case "DELETE":
		s.handleDeleteTemplate(w, r, id)
	default:
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
	}
}

// handleListTemplates handles GET /api/v1/templates
func (s *APIServer) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var (
		templates []*models.Template
		err       error
	)

	if query := r.URL.Query().Get("q"); query != "" {
		templates, err = s.service.SearchTemplates(query)
	} else {
		templates, err = s.service.ListTemplates()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	payloads := make([]templatePayload, 0, len(templates))
	for _, t := range templates {
		payloads = append(payloads, toTemplatePayload(t))
	}

	s.writeResponse(w, payloads, fmt.Sprintf("%d templates", len(payloads)), http.StatusOK)
}

// handleGetTemplate handles GET /api/v1/templates/{id}
func (s *APIServer) handleGetTemplate(w http.ResponseWriter, r *http.Request, id int) {
	tmpl, err := s.service.GetTemplate(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Raw body for curl-style template downloads
	if r.URL.Query().Get("format") == "raw" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tmpl.Filename()))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(tmpl.Body))
		return
	}

	s.writeResponse(w, toTemplatePayload(tmpl), "", http.StatusOK)
}

// handleCreateTemplate handles POST /api/v1/templates
func (s *APIServer) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body"))
		return
	}

	tmpl, err := s.service.CreateTemplate(req.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResponse(w, toTemplatePayload(tmpl), fmt.Sprintf("Template %d created", tmpl.ID), http.StatusCreated)
}

// handleUpdateTemplate handles PUT /api/v1/templates/{id}
func (s *APIServer) handleUpdateTemplate(w http.ResponseWriter, r *http.Request, id int) {
	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body"))
		return
	}

	if err := s.service.UpdateTemplate(id, req.Body); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResponse(w, nil, fmt.Sprintf("Template %d updated", id), http.StatusOK)
}

// handleDeleteTemplate handles DELETE /api/v1/templates/{id}
func (s *APIServer) handleDeleteTemplate(w http.ResponseWriter, r *http.Request, id int) {
	if err := s.service.DeleteTemplate(id); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResponse(w, nil, fmt.Sprintf("Template %d deleted", id), http.StatusOK)
}

// handleGenerate handles POST /api/v1/generate
func (s *APIServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	var req struct {
		ScheduledStart string `json:"scheduled_start"`
		Link           string `json:"link"`
		Info           string `json:"info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body"))
		return
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledStart)
	if err != nil {
		s.writeError(w, errors.ValidationError("scheduled_start must be an RFC 3339 timestamp"))
		return
	}

	// Generation always resolves to a display string; failure kinds
	// are inside the text, not the HTTP status
	text := s.service.GenerateAnnouncement(models.RenderRequest{
		ScheduledDate: scheduled,
		Link:          req.Link,
		Info:          req.Info,
	})

	s.writeResponse(w, map[string]string{"text": text}, "", http.StatusOK)
}

// handleLivestreams handles GET /api/v1/livestreams
func (s *APIServer) handleLivestreams(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	streams, err := s.service.UpcomingLivestreams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	type streamPayload struct {
		models.Livestream
		WatchURL      string `json:"watch_url"`
		IsFirstSunday bool   `json:"is_first_sunday"`
	}

	payloads := make([]streamPayload, 0, len(streams))
	for _, stream := range streams {
		payloads = append(payloads, streamPayload{
			Livestream:    stream,
			WatchURL:      stream.WatchURL(),
			IsFirstSunday: stream.IsFirstSunday(),
		})
	}

	s.writeResponse(w, payloads, fmt.Sprintf("%d upcoming livestreams", len(payloads)), http.StatusOK)
}

// handleThumbnail handles GET /api/v1/thumbnail
func (s *APIServer) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		s.writeError(w, errors.ValidationError("Thumbnail 'url' parameter is required"))
		return
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "thumbnail.jpg"
	}

	link, err := s.service.Thumbnails().CreateDownloadLink(url, filename)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if link == nil {
		// No image available is a valid outcome, not an error
		s.writeResponse(w, nil, "No thumbnail available", http.StatusOK)
		return
	}

	s.writeResponse(w, link, "", http.StatusOK)
}

// handleHistory handles GET /api/v1/history
func (s *APIServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	history, err := s.service.History()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResponse(w, history, fmt.Sprintf("%d selections", len(history)), http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	templates, err := s.service.ListTemplates()

	health := map[string]interface{}{
		"status":    "healthy",
		"templates": len(templates),
		"library":   s.service.Storage().GetBaseDir(),
	}
	if err != nil {
		health["status"] = "degraded"
		health["error"] = err.Error()
	}

	s.writeResponse(w, health, "", http.StatusOK)
}
