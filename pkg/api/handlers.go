package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"github.com/james-coso/chatge.ie/pkg/assistant"
	"github.com/james-coso/chatge.ie/pkg/config"
)

// GenericErrorMessage is the only error text the chat client ever sees.
const GenericErrorMessage = "An error occurred while processing your request."

// AskRequest is the request body for POST /api/ask-gpt
type AskRequest struct {
	Messages []assistant.Turn `json:"messages"`
	ThreadID string           `json:"threadId,omitempty"`
}

// AskResponse is the success response for POST /api/ask-gpt
type AskResponse struct {
	Response string `json:"response"` // HTML fragment
	ThreadID string `json:"threadId"`
}

// ErrorResponse is returned with status 500 for any failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// Asker forwards one user turn to the assistant.
type Asker interface {
	Ask(ctx context.Context, req assistant.AskRequest) (assistant.AskResponse, error)
}

// Handlers serves the chat API.
type Handlers struct {
	asker   Asker
	prompts func() config.PromptCatalog
}

// NewHandlers creates the API handlers. prompts is called on every request so the
// catalog can be reloaded while serving.
func NewHandlers(asker Asker, prompts func() config.PromptCatalog) *Handlers {
	if prompts == nil {
		prompts = config.DefaultPrompts
	}
	return &Handlers{asker: asker, prompts: prompts}
}

// AskHandler handles POST /api/ask-gpt
func (h *Handlers) AskHandler(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error().Err(err).Msg("Invalid ask request body")
		writeError(w)
		return
	}

	// The run keeps polling even if the browser goes away.
	ctx := context.WithoutCancel(r.Context())

	resp, err := h.asker.Ask(ctx, assistant.AskRequest{
		Messages: req.Messages,
		ThreadID: req.ThreadID,
	})
	if err != nil {
		logger.Error().Err(err).Str("thread_id", req.ThreadID).Msg("Ask failed")
		writeError(w)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Response: resp.Response,
		ThreadID: resp.ThreadID,
	})
}

// PromptsHandler handles GET /api/prompts
func (h *Handlers) PromptsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.prompts())
}

// HealthHandler handles GET /api/health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: GenericErrorMessage})
}

// RegisterRoutes registers the API routes on a router
func RegisterRoutes(router *mux.Router, h *Handlers) {
	router.HandleFunc("/api/ask-gpt", h.AskHandler).Methods("POST")
	router.HandleFunc("/api/prompts", h.PromptsHandler).Methods("GET")
	router.HandleFunc("/api/health", HealthHandler).Methods("GET")
}
