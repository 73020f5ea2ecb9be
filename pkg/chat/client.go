package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/james-coso/chatge.ie/pkg/api"
	"github.com/james-coso/chatge.ie/pkg/assistant"
	"github.com/james-coso/chatge.ie/pkg/config"
)

const askPath = "/api/ask-gpt"

// ServerError is a non-200 reply from the proxy.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

// HTTPTransport talks to a running chat server.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPTransport returns a transport for the server at baseURL. timeout bounds
// each request and should exceed the server's polling budget.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Ask(ctx context.Context, req assistant.AskRequest) (assistant.AskResponse, error) {
	body, err := json.Marshal(api.AskRequest{Messages: req.Messages, ThreadID: req.ThreadID})
	if err != nil {
		return assistant.AskResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+askPath, bytes.NewReader(body))
	if err != nil {
		return assistant.AskResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client().Do(httpReq)
	if err != nil {
		return assistant.AskResponse{}, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return assistant.AskResponse{}, &ServerError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	var out api.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return assistant.AskResponse{}, errors.Wrap(err, "decode response")
	}
	if out.Response == "" {
		return assistant.AskResponse{}, errors.New("no response provided")
	}
	return assistant.AskResponse{Response: out.Response, ThreadID: out.ThreadID}, nil
}

// Prompts fetches the canned prompt catalog from the server.
func (t *HTTPTransport) Prompts(ctx context.Context) (config.PromptCatalog, error) {
	var out config.PromptCatalog
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"/api/prompts", nil)
	if err != nil {
		return out, err
	}
	resp, err := t.client().Do(httpReq)
	if err != nil {
		return out, errors.Wrap(err, "fetch prompts")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, &ServerError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, errors.Wrap(err, "decode prompts")
	}
	return out, nil
}

func (t *HTTPTransport) client() *http.Client {
	if t.Client == nil {
		return http.DefaultClient
	}
	return t.Client
}
