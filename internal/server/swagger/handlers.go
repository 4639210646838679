// Package swagger serves the OpenAPI description of the userkeeper HTTP API
// together with a Swagger UI page that renders it.
package swagger

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiSpec []byte

var uiTemplate = template.Must(template.New("swagger").Parse(swaggerUITemplate))

// Handlers serves the embedded OpenAPI document and the UI.
type Handlers struct {
	title    string
	specJSON func() ([]byte, error)
}

// NewHandlers returns handlers whose UI page carries title.
func NewHandlers(title string) *Handlers {
	return &Handlers{
		title:    title,
		specJSON: sync.OnceValues(func() ([]byte, error) { return yamlToJSON(openapiSpec) }),
	}
}

// RegisterRoutes adds the documentation routes to router. All of them are
// public.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/openapi.yaml", h.serveSpecYAML).Methods(http.MethodGet)
	router.HandleFunc("/openapi.json", h.serveSpecJSON).Methods(http.MethodGet)
	router.HandleFunc("/swagger-ui", h.serveUI).Methods(http.MethodGet)
	router.HandleFunc("/api-docs", h.serveUI).Methods(http.MethodGet)
}

func (h *Handlers) serveSpecYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapiSpec)
}

func (h *Handlers) serveSpecJSON(w http.ResponseWriter, _ *http.Request) {
	b, err := h.specJSON()
	if err != nil {
		http.Error(w, "openapi document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *Handlers) serveUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uiTemplate.Execute(w, struct{ Title string }{h.title}); err != nil {
		http.Error(w, "render swagger ui", http.StatusInternalServerError)
	}
}

// yamlToJSON re-encodes a YAML document as JSON.
func yamlToJSON(src []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("decode openapi yaml: %w", err)
	}
	doc, err := jsonCompatible(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// jsonCompatible rewrites maps with non-string keys, which encoding/json
// cannot marshal.
func jsonCompatible(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			c, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			c, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = c
		}
		return out, nil
	case []any:
		for i, item := range t {
			c, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	default:
		return v, nil
	}
}

const swaggerUITemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui.css" />
  <style>
    html { box-sizing: border-box; overflow-y: scroll; }
    *, *:before, *:after { box-sizing: inherit; }
    body { margin: 0; padding: 0; }
  </style>
</head>
<body>
<div id="swagger-ui"></div>

<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui-bundle.js" charset="UTF-8"></script>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui-standalone-preset.js" charset="UTF-8"></script>
<script>
window.onload = function() {
  window.ui = SwaggerUIBundle({
    url: "/openapi.yaml",
    dom_id: '#swagger-ui',
    deepLinking: true,
    presets: [
      SwaggerUIBundle.presets.apis,
      SwaggerUIStandalonePreset
    ],
    plugins: [
      SwaggerUIBundle.plugins.DownloadUrl
    ],
    layout: "StandaloneLayout",
    persistAuthorization: true
  });
};
</script>
</body>
</html>`
