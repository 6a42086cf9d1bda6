package api

import (
	"encoding/json"
	"net/http"

	"github.com/parishav/announcer/internal/errors"
)

// handleOpenAPI serves the OpenAPI documentation interface
func (s *APIServer) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	// Simple HTML documentation page
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Announcer API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui.css" />
    <style>
        html { box-sizing: border-box; overflow: -moz-scrollbars-vertical; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: '/api/openapi.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.presets.standalone
                ],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// handleOpenAPISpec serves the OpenAPI JSON specification
func (s *APIServer) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	spec := getOpenAPISpec()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(spec)
}

// getOpenAPISpec returns the OpenAPI 3.0 specification
func getOpenAPISpec() map[string]interface{} {
	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Announcer API",
			"description": "Livestream announcement generation and template management",
			"version":     "1.0.0",
		},
		"servers": []map[string]interface{}{
			{
				"url":         "http://localhost:8080/api/v1",
				"description": "Local console",
			},
		},
		"paths": map[string]interface{}{
			"/templates": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List templates",
					"description": "Templates ordered by numeric id; optional fuzzy filter via the q parameter",
					"parameters": []map[string]interface{}{
						{
							"name":   "q",
							"in":     "query",
							"schema": map[string]interface{}{"type": "string"},
						},
					},
				},
				"post": map[string]interface{}{
					"summary":     "Create template",
					"description": "Stores the body under the next sequential id",
				},
			},
			"/templates/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get template",
					"description": "Add format=raw for a plain-text download of the body",
				},
				"put":    map[string]interface{}{"summary": "Update template body"},
				"delete": map[string]interface{}{"summary": "Delete template"},
			},
			"/generate": map[string]interface{}{
				"post": map[string]interface{}{
					"summary": "Generate announcement text",
					"description": "Picks a template outside the recency window, renders it and " +
						"appends the pick to the history. The result is always a text string; " +
						"an exhausted template set or a missing template file is reported " +
						"inside the text itself.",
				},
			},
			"/livestreams": map[string]interface{}{
				"get": map[string]interface{}{"summary": "List upcoming scheduled livestreams"},
			},
			"/thumbnail": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Cropped thumbnail download link",
					"description": "Fetches the image at url, crops the letterbox bars and returns a base64 data URI",
					"parameters": []map[string]interface{}{
						{
							"name":     "url",
							"in":       "query",
							"required": true,
							"schema":   map[string]interface{}{"type": "string"},
						},
						{
							"name":   "filename",
							"in":     "query",
							"schema": map[string]interface{}{"type": "string"},
						},
					},
				},
			},
			"/history": map[string]interface{}{
				"get": map[string]interface{}{"summary": "Selection history, oldest first"},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{"summary": "Health check"},
			},
		},
	}
}
