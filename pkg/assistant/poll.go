package assistant

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultPollInterval = time.Second
	DefaultMaxAttempts  = 30
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller waits for a run to finish by retrieving its status on a fixed interval.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Sleep       SleepFunc
	Logger      zerolog.Logger
}

// NewPoller returns a Poller with the given settings, substituting defaults for
// non-positive values.
func NewPoller(interval time.Duration, maxAttempts int) *Poller {
	p := &Poller{Interval: interval, MaxAttempts: maxAttempts, Logger: zerolog.Nop()}
	p.normalize()
	return p
}

func (p *Poller) normalize() {
	if p.Interval <= 0 {
		p.Interval = DefaultPollInterval
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
}

// Wait retrieves the run at most MaxAttempts times. It returns the completed run,
// a *RunFailedError for terminal failures, or ErrRunTimeout once the budget is spent.
// Sleeping happens only between retrievals.
func (p *Poller) Wait(ctx context.Context, svc Service, threadID, runID string) (Run, error) {
	p.normalize()

	var run Run
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		var err error
		run, err = svc.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return run, errors.Wrapf(err, "retrieve run %s", runID)
		}

		p.Logger.Debug().
			Str("run_id", runID).
			Int("attempt", attempt).
			Str("status", string(run.Status)).
			Msg("Polled run status")

		if run.Status == RunStatusCompleted {
			return run, nil
		}
		if run.Status.Failed() {
			return run, newRunFailedError(run)
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := p.Sleep(ctx, p.Interval); err != nil {
			return run, errors.Wrap(err, "wait for run")
		}
	}

	return run, ErrRunTimeout
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
