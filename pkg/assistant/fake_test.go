package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeService is an in-memory upstream used by the proxy and poller tests.
type fakeService struct {
	mu sync.Mutex

	threads     map[string][]Message
	nextThread  int
	statuses    []Run // returned in order by RetrieveRun; the last one repeats
	retrievals  int
	runs        []RunOptions
	reply       Content
	noReply     bool
	listErr     map[string]error
	createErr   error
	messageErr  error
	runErr      error
	retrieveErr error
}

func newFakeService() *fakeService {
	return &fakeService{
		threads: make(map[string][]Message),
		listErr: make(map[string]error),
		statuses: []Run{
			{ID: "run_1", Status: RunStatusCompleted},
		},
		reply: BlockContent(Block{Type: "text", Text: "Hello"}),
	}
}

func (f *fakeService) CreateThread(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextThread++
	id := fmt.Sprintf("thread_%d", f.nextThread)
	f.threads[id] = nil
	return id, nil
}

func (f *fakeService) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[threadID]; err != nil {
		return nil, err
	}
	msgs, ok := f.threads[threadID]
	if !ok {
		return nil, fmt.Errorf("no thread found with id '%s'", threadID)
	}
	out := make([]Message, len(msgs))
	for i := range msgs {
		out[i] = msgs[len(msgs)-1-i]
	}
	return out, nil
}

func (f *fakeService) CreateMessage(ctx context.Context, threadID string, turn Turn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messageErr != nil {
		return f.messageErr
	}
	f.threads[threadID] = append(f.threads[threadID], Message{
		ID:      fmt.Sprintf("msg_%d", len(f.threads[threadID])+1),
		Role:    turn.Role,
		Content: BlockContent(Block{Type: "text", Text: turn.Content}),
	})
	return nil
}

func (f *fakeService) CreateRun(ctx context.Context, threadID string, opts RunOptions) (Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.runErr != nil {
		return Run{}, f.runErr
	}
	f.runs = append(f.runs, opts)
	if !f.noReply {
		f.threads[threadID] = append(f.threads[threadID], Message{
			ID:      fmt.Sprintf("msg_%d", len(f.threads[threadID])+1),
			Role:    RoleAssistant,
			Content: f.reply,
		})
	}
	return Run{ID: "run_1", Status: RunStatusQueued}, nil
}

func (f *fakeService) RetrieveRun(ctx context.Context, threadID, runID string) (Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.retrieveErr != nil {
		return Run{}, f.retrieveErr
	}
	idx := f.retrievals
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	f.retrievals++
	return f.statuses[idx], nil
}

// recordingSleep counts sleeps instead of blocking.
type recordingSleep struct {
	calls int
	total time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.calls++
	r.total += d
	return nil
}
