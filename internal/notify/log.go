package notify

import (
	"context"

	"service-fleet-dispatch/internal/logx"
)

// LogDispatcher writes messages to the log instead of sending them.
type LogDispatcher struct {
	logger logx.Logger
}

// NewLogDispatcher creates a new LogDispatcher.
func NewLogDispatcher(logger logx.Logger) *LogDispatcher {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LogDispatcher{logger: logger}
}

// Dispatch implements Dispatcher.
func (d *LogDispatcher) Dispatch(_ context.Context, msg Message) error {
	if msg.Recipient == "" {
		return Permanent(ErrEmptyRecipient)
	}
	d.logger.Info("notification not sent: channel has no backend",
		logx.String("event", "notification_logged"),
		logx.String("channel", string(msg.Channel)),
		logx.String("kind", string(msg.Kind)),
		logx.String("recipient", msg.Recipient),
		logx.Stringer("booking_id", msg.BookingID),
	)
	return nil
}
