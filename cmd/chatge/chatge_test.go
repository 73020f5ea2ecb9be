package chatge

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-coso/chatge.ie/pkg/api"
	"github.com/james-coso/chatge.ie/pkg/assistant"
	"github.com/james-coso/chatge.ie/pkg/chat"
	"github.com/james-coso/chatge.ie/pkg/config"
)

type stubAsker struct {
	reply assistant.AskResponse
	err   error
}

func (s stubAsker) Ask(context.Context, assistant.AskRequest) (assistant.AskResponse, error) {
	return s.reply, s.err
}

func newChatServer(t *testing.T, asker api.Asker) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()
	api.RegisterRoutes(router, api.NewHandlers(asker, nil))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	config.SetConfigDir(dir)
	t.Cleanup(func() { config.SetConfigDir("") })
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: " WARN ", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := newLogger(&buf, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.GetLevel())

			logger.Error().Msg("hello")
			assert.Contains(t, buf.String(), `"message":"hello"`)
		})
	}
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "version", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
	assert.Contains(t, out, "chatGE.ie")
}

func TestConfigCmd(t *testing.T) {
	dir := useTempConfigDir(t)

	out, _, err := execute(t, "config", "directory")
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(out))

	out, _, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file does not exist.")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("general:\n  port: 9090\n"), 0600))
	out, _, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "port: 9090")
}

func TestServeCmd_RequiresCredentials(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv(config.EnvAssistantID, "")

	_, _, err := execute(t, "serve")
	assert.ErrorContains(t, err, "api key is not configured")
}

func TestServeCmd_RejectsUnknownRenderMode(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv(config.EnvAssistantID, "asst_1")

	_, _, err := execute(t, "serve", "--render-mode", "fancy")
	assert.ErrorContains(t, err, "unknown render mode")
}

func TestAskCmd(t *testing.T) {
	srv := newChatServer(t, stubAsker{reply: assistant.AskResponse{Response: "<p>Polls open at <strong>7am</strong></p>", ThreadID: "thread_42"}})

	out, _, err := execute(t, "ask", "--server", srv.URL, "--raw", "When", "do", "polls", "open?")

	require.NoError(t, err)
	assert.Contains(t, out, "<p>Polls open at <strong>7am</strong></p>")
	assert.Contains(t, out, "thread: thread_42")
}

func TestAskCmd_ServerURLFromEnv(t *testing.T) {
	srv := newChatServer(t, stubAsker{reply: assistant.AskResponse{Response: "<p>ok</p>", ThreadID: "t"}})
	t.Setenv(config.EnvServerURL, srv.URL)

	out, _, err := execute(t, "ask", "--raw", "Hi")

	require.NoError(t, err)
	assert.Contains(t, out, "<p>ok</p>")
}

func TestAskCmd_Failure(t *testing.T) {
	srv := newChatServer(t, stubAsker{err: errors.New("boom")})

	_, stderr, err := execute(t, "ask", "--server", srv.URL, "Hi")

	require.Error(t, err)
	assert.Contains(t, stderr, api.GenericErrorMessage)
}

type scriptedAsk struct {
	asked []string
	err   error
}

func (s *scriptedAsk) ask(_ context.Context, text string) (string, error) {
	s.asked = append(s.asked, text)
	if s.err != nil {
		return "", s.err
	}
	return "<p>reply to " + text + "</p>", nil
}

func newTestREPL(input string, asker *scriptedAsk) (*repl, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	session := chat.NewSession(nil, zerolog.Nop())
	return &repl{
		session: session,
		prompts: config.DefaultPrompts().All(),
		in:      strings.NewReader(input),
		out:     &out,
		errOut:  &errOut,
		ask:     asker.ask,
		render:  func(html string) string { return html + "\n" },
	}, &out, &errOut
}

func TestREPL_Commands(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantAsked []string
		wantOut   string
		wantErr   string
	}{
		{
			name:      "free text",
			input:     "Who can vote?\n",
			wantAsked: []string{"Who can vote?"},
			wantOut:   "<p>reply to Who can vote?</p>",
		},
		{
			name:    "list prompts",
			input:   "/prompts\n",
			wantOut: "How do I register to vote?",
		},
		{
			name:      "numbered prompt",
			input:     "/5\n",
			wantAsked: []string{"What are Fianna Fáil's (FF) main policies?"},
		},
		{
			name:    "prompt out of range",
			input:   "/99\n",
			wantErr: "no prompt 99",
		},
		{
			name:    "unknown command",
			input:   "/dance\n",
			wantErr: `unknown command "/dance"`,
		},
		{
			name:    "reset",
			input:   "/reset\n",
			wantOut: "Started a new conversation.",
		},
		{
			name:      "exit stops reading",
			input:     "/exit\nNever sent\n",
			wantAsked: nil,
		},
		{
			name:      "blank lines are skipped",
			input:     "\n   \nHi\n",
			wantAsked: []string{"Hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asker := &scriptedAsk{}
			r, out, errOut := newTestREPL(tt.input, asker)

			require.NoError(t, r.run(context.Background()))

			assert.Equal(t, tt.wantAsked, asker.asked)
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestREPL_ContinuesAfterFailure(t *testing.T) {
	asker := &scriptedAsk{err: errors.New("server unavailable")}
	r, _, errOut := newTestREPL("one\ntwo\n", asker)

	require.NoError(t, r.run(context.Background()))

	assert.Equal(t, []string{"one", "two"}, asker.asked)
	assert.Equal(t, 2, strings.Count(errOut.String(), "server unavailable"))
}

func TestApplySetupValues(t *testing.T) {
	cfg := &config.AppConfig{}
	err := applySetupValues(cfg, setupValues{
		APIKey:      "sk-test",
		AssistantID: "asst_1",
		Port:        "9000",
		RenderMode:  "markdown",
	})

	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI()["api_key"])
	assert.Equal(t, "asst_1", cfg.Assistant.ID)
	assert.Equal(t, 9000, cfg.General.Port)
	assert.Equal(t, "markdown", cfg.General.RenderMode)

	assert.Error(t, applySetupValues(cfg, setupValues{Port: "eighty"}))
}

func TestCurrentSetupValues_Defaults(t *testing.T) {
	v := currentSetupValues(&config.AppConfig{})

	assert.Equal(t, "8080", v.Port)
	assert.Equal(t, config.DefaultRenderMode, v.RenderMode)
	assert.Empty(t, v.APIKey)
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("8080"))
	assert.Error(t, validatePort("0"))
	assert.Error(t, validatePort("70000"))
	assert.Error(t, validatePort("http"))
	assert.Error(t, required("assistant ID")(""))
}
