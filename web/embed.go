package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/index.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates returns the page templates rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// Static returns the embedded static assets. Paths start with "static/".
func Static() fs.FS {
	return staticFS
}
