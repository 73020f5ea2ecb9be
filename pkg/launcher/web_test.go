package launcher

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-coso/chatge.ie/pkg/api"
	"github.com/james-coso/chatge.ie/pkg/assistant"
	"github.com/james-coso/chatge.ie/pkg/config"
)

type echoAsker struct{}

func (echoAsker) Ask(_ context.Context, req assistant.AskRequest) (assistant.AskResponse, error) {
	last := req.Messages[len(req.Messages)-1]
	return assistant.AskResponse{Response: "<p>" + last.Content + "</p>", ThreadID: "thread_1"}, nil
}

func newTestServer(t *testing.T, page PageData) *httptest.Server {
	t.Helper()
	router, err := NewRouter(ServerConfig{
		Handlers: api.NewHandlers(echoAsker{}, nil),
		Page:     page,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, body.String()
}

func TestRouter_ServesChatPage(t *testing.T) {
	tests := []struct {
		name      string
		page      PageData
		wantTitle string
		wantFlag  string
	}{
		{
			name:      "defaults",
			page:      PageData{},
			wantTitle: defaultTitle,
			wantFlag:  `data-show-error-turns="false"`,
		},
		{
			name:      "custom title with error turns",
			page:      PageData{Title: "Election Helper", ShowErrorTurns: true},
			wantTitle: "Election Helper",
			wantFlag:  `data-show-error-turns="true"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.page)
			resp, body := get(t, srv.URL+"/")

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.Contains(t, body, "<title>"+tt.wantTitle+"</title>")
			assert.Contains(t, body, tt.wantFlag)
			assert.Contains(t, body, "/static/chat.js")
		})
	}
}

func TestRouter_ServesStaticAssets(t *testing.T) {
	srv := newTestServer(t, PageData{})

	for _, asset := range []string{"/static/chat.js", "/static/chat.css"} {
		resp, body := get(t, srv.URL+asset)
		assert.Equal(t, http.StatusOK, resp.StatusCode, asset)
		assert.NotEmpty(t, body, asset)
	}

	resp, _ := get(t, srv.URL+"/static/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_MountsAPI(t *testing.T) {
	srv := newTestServer(t, PageData{})

	resp, err := http.Post(srv.URL+"/api/ask-gpt", "application/json",
		strings.NewReader(`{"messages":[{"role":"user","content":"Hello"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	health, body := get(t, srv.URL+"/api/health")
	assert.Equal(t, http.StatusOK, health.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, ServerConfig{
			Port:     0,
			Handlers: api.NewHandlers(echoAsker{}, nil),
			Logger:   zerolog.Nop(),
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownGrace + time.Second):
		t.Fatal("server did not shut down")
	}
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
}

func TestPromptStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewPromptStore(config.DefaultPrompts())
	assert.Len(t, store.Get().General, 4)

	writeConfig(t, path, "prompts:\n  general:\n    - Where is my polling station?\n")
	require.NoError(t, store.Reload(path))

	got := store.Get()
	assert.Equal(t, []string{"Where is my polling station?"}, got.General)
	assert.Equal(t, config.DefaultPrompts().Parties, got.Parties)
}

func TestPromptStore_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewPromptStore(config.PromptCatalog{General: []string{"kept"}})

	writeConfig(t, path, "prompts: [unterminated")
	assert.Error(t, store.Reload(path))
	assert.Equal(t, []string{"kept"}, store.Get().General)
}

func TestPromptStore_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "general:\n  port: 8080\n")

	store := NewPromptStore(config.DefaultPrompts())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, path, zerolog.Nop()) }()

	// Rewrite until the watcher is registered and picks the change up.
	assert.Eventually(t, func() bool {
		writeConfig(t, path, "prompts:\n  general:\n    - Who are my candidates?\n")
		general := store.Get().General
		return len(general) == 1 && general[0] == "Who are my candidates?"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
