package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

const defaultSettleInterval = 250 * time.Millisecond

var errStillClaimed = errors.New("contact file still present")

// ContactSettler waits, after a stop, for the engine to release a run by
// polling until its contact file disappears or Timeout elapses.
type ContactSettler struct {
	Timeout  time.Duration
	Interval time.Duration
	// Stat defaults to os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// Settle blocks until contactPath is gone. A zero Timeout returns immediately.
// On timeout the returned error names the path; callers treat it as a warning.
func (s ContactSettler) Settle(ctx context.Context, contactPath string) error {
	if s.Timeout <= 0 {
		return nil
	}
	interval := s.Interval
	if interval <= 0 {
		interval = defaultSettleInterval
	}
	stat := s.Stat
	if stat == nil {
		stat = os.Stat
	}
	backoff := retry.WithMaxDuration(s.Timeout, retry.NewConstant(interval))
	err := retry.Do(ctx, backoff, func(context.Context) error {
		_, err := stat(contactPath)
		if err == nil {
			return retry.RetryableError(errStillClaimed)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	})
	if errors.Is(err, errStillClaimed) {
		return fmt.Errorf(messages.EngineSettleTimeoutFmt, contactPath, s.Timeout)
	}
	return err
}

// SettlerFromConfig builds a ContactSettler from engine timing settings.
func SettlerFromConfig(timeoutSeconds int, pollIntervalMS int) ContactSettler {
	return ContactSettler{
		Timeout:  time.Duration(timeoutSeconds) * time.Second,
		Interval: time.Duration(pollIntervalMS) * time.Millisecond,
	}
}
