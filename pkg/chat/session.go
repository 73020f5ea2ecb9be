// Package chat holds the client side of a conversation with the chat proxy: the
// ordered turns, the thread id handed back by the server, and the idle/awaiting
// state that allows a single request in flight.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/james-coso/chatge.ie/pkg/assistant"
)

// ErrorTurnText is the content of the visible turn appended on failure when
// ShowErrors is set.
const ErrorTurnText = "<p>Sorry, something went wrong. Please try again.</p>"

var (
	// ErrBusy is returned by Submit while a request is already in flight.
	ErrBusy = errors.New("a request is already in flight")
	// ErrEmptyInput is returned by Submit for blank text.
	ErrEmptyInput = errors.New("nothing to send")
)

type State int

const (
	StateIdle State = iota
	StateAwaiting
)

func (s State) String() string {
	if s == StateAwaiting {
		return "awaiting-response"
	}
	return "idle"
}

// Transport sends the conversation to the proxy.
type Transport interface {
	Ask(ctx context.Context, req assistant.AskRequest) (assistant.AskResponse, error)
}

// Session is one client conversation. It is safe for concurrent use but only
// one Submit runs at a time.
type Session struct {
	Transport  Transport
	ShowErrors bool // append a visible error turn on failure
	Logger     zerolog.Logger

	// OnStateChange, if set, is called on every state transition.
	OnStateChange func(State)

	mu       sync.Mutex
	state    State
	history  []assistant.Turn
	threadID string
}

func NewSession(transport Transport, logger zerolog.Logger) *Session {
	return &Session{
		Transport: transport,
		Logger:    logger.With().Str("component", "chat-session").Logger(),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the turns so far.
func (s *Session) History() []assistant.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]assistant.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// ThreadID is the last thread id returned by the server, empty before the first reply.
func (s *Session) ThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threadID
}

// Reset forgets the history and the thread. It fails with ErrBusy while awaiting.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaiting {
		return ErrBusy
	}
	s.history = nil
	s.threadID = ""
	return nil
}

// Submit appends text as a user turn, sends the whole history and waits for the
// reply. On success the assistant turn is appended and returned, and the thread
// id is replaced by the one the server returned.
func (s *Session) Submit(ctx context.Context, text string) (assistant.Turn, error) {
	if strings.TrimSpace(text) == "" {
		return assistant.Turn{}, ErrEmptyInput
	}

	s.mu.Lock()
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return assistant.Turn{}, ErrBusy
	}
	s.history = append(s.history, assistant.Turn{Role: assistant.RoleUser, Content: text})
	req := assistant.AskRequest{
		Messages: append([]assistant.Turn(nil), s.history...),
		ThreadID: s.threadID,
	}
	s.state = StateAwaiting
	s.mu.Unlock()
	s.notify(StateAwaiting)
	defer s.notify(StateIdle)

	resp, err := s.Transport.Ask(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle

	if err != nil {
		s.Logger.Error().Err(err).Str("thread_id", req.ThreadID).Msg("Request failed")
		if s.ShowErrors {
			s.history = append(s.history, assistant.Turn{Role: assistant.RoleAssistant, Content: ErrorTurnText})
		}
		return assistant.Turn{}, err
	}

	turn := assistant.Turn{Role: assistant.RoleAssistant, Content: resp.Response}
	s.history = append(s.history, turn)
	if resp.ThreadID != "" {
		if s.threadID != "" && s.threadID != resp.ThreadID {
			s.Logger.Info().Str("previous", s.threadID).Str("thread_id", resp.ThreadID).Msg("Server started a new thread")
		}
		s.threadID = resp.ThreadID
	}
	return turn, nil
}

// notify runs outside the lock so callbacks may query the session.
func (s *Session) notify(state State) {
	if s.OnStateChange != nil {
		s.OnStateChange(state)
	}
}
