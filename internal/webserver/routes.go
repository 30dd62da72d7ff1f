package webserver

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/webapi"
)

//go:embed web
var webAssets embed.FS

// registerRoutes sets up API and frontend routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	webapi.RegisterRoutes(mux, cfg.Controller)

	handler, err := frontendHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize frontend handler: %w", err)
	}
	mux.Handle("/", handler)
	return nil
}

// frontendHandler serves the embedded participant frontend. Unknown
// paths fall back to index.html so the stage router owns navigation.
func frontendHandler() (http.Handler, error) {
	webFS, err := fs.Sub(webAssets, "web")
	if err != nil {
		return nil, fmt.Errorf("failed to create sub filesystem for web assets: %w", err)
	}

	fileServer := http.FileServer(http.FS(webFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" {
			cleanPath := strings.TrimPrefix(path, "/")
			if f, err := webFS.Open(cleanPath); err == nil {
				f.Close() //nolint:errcheck
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	}), nil
}
