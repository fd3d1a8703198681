// Package swagger serves the API reference.
package swagger

import (
	"bytes"
	"context"
	"net/http"
	"time"
)

// RedocURL is the ReDoc bundle loaded by the docs page.
const RedocURL = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

// Route paths.
const (
	DocsPath = "/api-docs"
	SpecPath = "/openapi.yaml"
)

// Register adds the ReDoc page at DocsPath and the embedded OpenAPI document
// at SpecPath.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	loaded := time.Now()

	mux.HandleFunc(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		if !readOnly(r) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(docsPage))
	})

	mux.HandleFunc(SpecPath, func(w http.ResponseWriter, r *http.Request) {
		if !readOnly(r) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		http.ServeContent(w, r, SpecPath, loaded, bytes.NewReader(OpenAPI))
	})
}

func readOnly(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

const docsPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>eventboard API</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + RedocURL + `"></script>
    <script>Redoc.init('` + SpecPath + `', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
