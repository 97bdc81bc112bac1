// Package web embeds the browser frontend and serves it as a single-page app
// with an index.html fallback for non-file paths.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed all:public
var publicFS embed.FS

// SPAHandler serves the embedded frontend, falling back to index.html for any
// path that does not match a file.
func SPAHandler() http.Handler {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}
		if f, err := sub.Open(path); err == nil {
			_ = f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
