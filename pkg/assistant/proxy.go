package assistant

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/james-coso/chatge.ie/pkg/format"
)

// FallbackPolicy decides what happens when a supplied thread cannot be looked up.
type FallbackPolicy string

const (
	// FallbackNewThread silently starts a new thread. The lookup error is logged.
	FallbackNewThread FallbackPolicy = "new_thread"
	// FallbackFail surfaces the lookup error to the caller.
	FallbackFail FallbackPolicy = "fail"
)

// AskRequest is one user turn to forward, with the conversation so far.
type AskRequest struct {
	Messages []Turn
	ThreadID string
}

// AskResponse carries the formatted reply and the thread to reuse next time.
type AskResponse struct {
	Response string
	ThreadID string
}

// ProxyConfig holds the fixed assistant configuration shared by every request.
type ProxyConfig struct {
	AssistantID  string
	Instructions string
	Fallback     FallbackPolicy
	Poller       *Poller
	Renderer     format.Renderer
	Logger       zerolog.Logger
}

// Proxy forwards conversations to the upstream assistant and returns HTML replies.
// It holds no per-conversation state.
type Proxy struct {
	svc          Service
	assistantID  string
	instructions string
	fallback     FallbackPolicy
	poller       *Poller
	renderer     format.Renderer
	logger       zerolog.Logger
}

func NewProxy(svc Service, cfg ProxyConfig) *Proxy {
	p := &Proxy{
		svc:          svc,
		assistantID:  cfg.AssistantID,
		instructions: cfg.Instructions,
		fallback:     cfg.Fallback,
		poller:       cfg.Poller,
		renderer:     cfg.Renderer,
		logger:       cfg.Logger.With().Str("component", "assistant-proxy").Logger(),
	}
	if p.fallback == "" {
		p.fallback = FallbackNewThread
	}
	if p.poller == nil {
		p.poller = NewPoller(DefaultPollInterval, DefaultMaxAttempts)
	}
	if p.renderer == nil {
		p.renderer = format.Minimal{}
	}
	p.poller.Logger = p.logger
	return p
}

// Ask submits the newest turn, runs the assistant and returns its formatted reply.
func (p *Proxy) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	p.logger.Info().
		Int("message_count", len(req.Messages)).
		Str("thread_id", req.ThreadID).
		Msg("Received ask request")

	if len(req.Messages) == 0 {
		return AskResponse{}, ErrNoMessages
	}

	threadID, err := p.resolveThread(ctx, req.ThreadID)
	if err != nil {
		return AskResponse{}, err
	}

	last := req.Messages[len(req.Messages)-1]
	if err := p.svc.CreateMessage(ctx, threadID, last); err != nil {
		return AskResponse{}, errors.Wrap(err, "create message")
	}

	run, err := p.svc.CreateRun(ctx, threadID, RunOptions{
		AssistantID:  p.assistantID,
		Instructions: p.instructions,
	})
	if err != nil {
		return AskResponse{}, errors.Wrap(err, "create run")
	}
	p.logger.Debug().Str("thread_id", threadID).Str("run_id", run.ID).Msg("Started run")

	if _, err := p.poller.Wait(ctx, p.svc, threadID, run.ID); err != nil {
		return AskResponse{}, err
	}

	messages, err := p.svc.ListMessages(ctx, threadID)
	if err != nil {
		return AskResponse{}, errors.Wrap(err, "list messages")
	}

	text := LatestAssistantText(messages)
	if text == "" {
		return AskResponse{}, ErrNoValidResponse
	}

	formatted := p.renderer.Render(text)
	p.logger.Info().
		Str("thread_id", threadID).
		Int("message_count", len(messages)).
		Int("response_length", len(formatted)).
		Msg("Current thread state")

	return AskResponse{Response: formatted, ThreadID: threadID}, nil
}

// resolveThread confirms an existing thread by listing its messages, or creates one.
func (p *Proxy) resolveThread(ctx context.Context, threadID string) (string, error) {
	if threadID != "" {
		_, err := p.svc.ListMessages(ctx, threadID)
		if err == nil {
			p.logger.Debug().Str("thread_id", threadID).Msg("Reusing existing thread")
			return threadID, nil
		}
		if p.fallback == FallbackFail {
			return "", errors.Wrapf(err, "retrieve thread %s", threadID)
		}
		p.logger.Warn().Err(err).Str("thread_id", threadID).Msg("Error retrieving thread, creating new one")
	}

	created, err := p.svc.CreateThread(ctx)
	if err != nil {
		return "", errors.Wrap(err, "create thread")
	}
	p.logger.Info().Str("thread_id", created).Msg("Created new thread")
	return created, nil
}

// LatestAssistantText returns the text of the most recent assistant message in a
// newest-first list, or "" when there is none or it carries no text.
func LatestAssistantText(messages []Message) string {
	for _, m := range messages {
		if m.Role == RoleAssistant {
			return m.Content.Text()
		}
	}
	return ""
}
