package notify

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/logx"
)

type statusStore interface {
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

type outcomeRecorder interface {
	Notification(channel, status string)
}

type nopRecorder struct{}

func (nopRecorder) Notification(string, string) {}

// Report counts dispatch outcomes of one delivery run.
type Report struct {
	Sent   int
	Failed int
}

// Outbox dispatches committed notification intents and records each outcome.
// A failed dispatch never fails the run.
type Outbox struct {
	dispatcher  Dispatcher
	store       statusStore
	concurrency int
	logger      logx.Logger
	metrics     outcomeRecorder
	now         func() time.Time
}

// NewOutbox creates a new Outbox. metrics may be nil.
func NewOutbox(d Dispatcher, store statusStore, concurrency int, logger logx.Logger, metrics outcomeRecorder) *Outbox {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Outbox{
		dispatcher:  d,
		store:       store,
		concurrency: concurrency,
		logger:      logger,
		metrics:     metrics,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Deliver dispatches ns concurrently and marks each row sent or failed.
func (o *Outbox) Deliver(ctx context.Context, ns []domain.Notification) Report {
	var sent, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for _, n := range ns {
		n := n
		g.Go(func() error {
			if o.deliverOne(ctx, n) {
				sent.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return Report{Sent: int(sent.Load()), Failed: int(failed.Load())}
}

func (o *Outbox) deliverOne(ctx context.Context, n domain.Notification) bool {
	err := o.dispatcher.Dispatch(ctx, FromNotification(n))
	if err != nil {
		o.metrics.Notification(string(n.Channel), string(domain.NotificationFailed))
		o.logger.Warn("notification dispatch failed",
			logx.String("event", "notification_failed"),
			logx.Stringer("notification_id", n.ID),
			logx.Stringer("booking_id", n.BookingID),
			logx.String("channel", string(n.Channel)),
			logx.Err(err),
		)
		if mErr := o.store.MarkFailed(ctx, n.ID, err.Error()); mErr != nil {
			o.logger.Error("notification status update failed",
				logx.Stringer("notification_id", n.ID),
				logx.Err(mErr),
			)
		}
		return false
	}

	o.metrics.Notification(string(n.Channel), string(domain.NotificationSent))
	if mErr := o.store.MarkSent(ctx, n.ID, o.now()); mErr != nil {
		o.logger.Error("notification status update failed",
			logx.Stringer("notification_id", n.ID),
			logx.Err(mErr),
		)
	}
	return true
}
