package openai

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/james-coso/chatge.ie/pkg/assistant"
)

// listLimit is how many messages are fetched per listing. The proxy only needs
// the newest assistant message, which sorts first in descending order.
const listLimit = 20

// ClientConfig holds the credentials and endpoint used to reach the Assistants API.
type ClientConfig struct {
	APIKey       string
	BaseURL      string
	Organization string
}

// NewClient creates a go-openai client from cfg, keeping the library defaults for
// anything left empty.
func NewClient(cfg ClientConfig) *openai.Client {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	if cfg.Organization != "" {
		c.OrgID = cfg.Organization
	}
	return openai.NewClientWithConfig(c)
}

// Assistants implements assistant.Service on top of the OpenAI Assistants API.
type Assistants struct {
	client *openai.Client
}

var _ assistant.Service = (*Assistants)(nil)

// NewAssistants creates a new Assistants adapter.
func NewAssistants(client *openai.Client) *Assistants {
	return &Assistants{client: client}
}

// CreateThread implements assistant.Service.
func (a *Assistants) CreateThread(ctx context.Context) (string, error) {
	thread, err := a.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

// ListMessages implements assistant.Service. Messages are returned newest first.
func (a *Assistants) ListMessages(ctx context.Context, threadID string) ([]assistant.Message, error) {
	limit := listLimit
	order := "desc"
	list, err := a.client.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	messages := make([]assistant.Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		messages = append(messages, toMessage(m))
	}
	return messages, nil
}

// CreateMessage implements assistant.Service.
func (a *Assistants) CreateMessage(ctx context.Context, threadID string, turn assistant.Turn) error {
	_, err := a.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(turn.Role),
		Content: turn.Content,
	})
	return err
}

// CreateRun implements assistant.Service.
func (a *Assistants) CreateRun(ctx context.Context, threadID string, opts assistant.RunOptions) (assistant.Run, error) {
	if opts.AssistantID == "" {
		return assistant.Run{}, errors.New("assistant id is not configured")
	}
	run, err := a.client.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID:  opts.AssistantID,
		Instructions: opts.Instructions,
	})
	if err != nil {
		return assistant.Run{}, err
	}
	return toRun(run), nil
}

// RetrieveRun implements assistant.Service.
func (a *Assistants) RetrieveRun(ctx context.Context, threadID, runID string) (assistant.Run, error) {
	run, err := a.client.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return assistant.Run{}, err
	}
	return toRun(run), nil
}

func toRun(r openai.Run) assistant.Run {
	run := assistant.Run{
		ID:     r.ID,
		Status: assistant.RunStatus(r.Status),
	}
	if r.LastError != nil {
		run.LastError = r.LastError.Message
	}
	return run
}

func toMessage(m openai.Message) assistant.Message {
	blocks := make([]assistant.Block, 0, len(m.Content))
	for _, c := range m.Content {
		block := assistant.Block{Type: c.Type}
		if c.Text != nil {
			block.Text = c.Text.Value
		}
		blocks = append(blocks, block)
	}
	return assistant.Message{
		ID:      m.ID,
		Role:    assistant.Role(m.Role),
		Content: assistant.BlockContent(blocks...),
	}
}
