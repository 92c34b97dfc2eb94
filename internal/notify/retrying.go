package notify

import (
	"context"
	"time"

	"service-fleet-dispatch/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes Retrying behaviour.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Retrying retries transient dispatch failures with exponential backoff.
type Retrying struct {
	next    Dispatcher
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetrying returns nil when next is nil.
func NewRetrying(next Dispatcher, logger logx.Logger, retries counter, cfg RetryConfig) *Retrying {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Retrying{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Dispatch implements Dispatcher.
func (r *Retrying) Dispatch(ctx context.Context, msg Message) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := r.next.Dispatch(ctx, msg)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || IsPermanent(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("notification dispatch retry",
			logx.String("channel", string(msg.Channel)),
			logx.Stringer("notification_id", msg.ID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d < 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
