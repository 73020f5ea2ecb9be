package launcher

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/james-coso/chatge.ie/web"
)

const defaultTitle = "ChatGE - Irish General Election Assistant"

// PageData parameterises the chat widget page.
type PageData struct {
	Title          string
	ShowErrorTurns bool // append a visible error turn when a request fails
}

type pageHandler struct {
	tmpl *template.Template
	data PageData
}

func newPageHandler(data PageData) (*pageHandler, error) {
	if data.Title == "" {
		data.Title = defaultTitle
	}
	tmpl, err := template.ParseFS(web.Templates(), "index.html")
	if err != nil {
		return nil, err
	}
	return &pageHandler{tmpl: tmpl, data: data}, nil
}

func (h *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, h.data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to render chat page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func staticHandler() http.Handler {
	static, err := fs.Sub(web.Static(), "static")
	if err != nil {
		// The embedded tree always contains static/.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(static)))
}
