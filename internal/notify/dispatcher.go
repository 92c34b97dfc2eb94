// Package notify delivers offer and staff notifications over SMS and messaging-app channels.
package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/domain"
)

// ErrUnsupportedChannel is returned when no dispatcher serves a channel.
var ErrUnsupportedChannel = errors.New("unsupported notification channel")

// ErrEmptyRecipient is returned for messages without an address.
var ErrEmptyRecipient = errors.New("empty recipient")

// Message is one outbound notification.
type Message struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	OfferID   *uuid.UUID
	Kind      domain.NotificationKind
	Channel   domain.NotificationChannel
	Recipient string
	Body      string
}

// FromNotification builds a Message from a stored notification intent.
func FromNotification(n domain.Notification) Message {
	return Message{
		ID:        n.ID,
		BookingID: n.BookingID,
		OfferID:   n.OfferID,
		Kind:      n.Kind,
		Channel:   n.Channel,
		Recipient: n.Recipient,
		Body:      n.Body,
	}
}

// Dispatcher sends a single message. Implementations must be safe for concurrent use.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, msg Message) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, msg Message) error { return f(ctx, msg) }

// PermanentError marks a failure that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent returns a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether err was marked permanent.
func IsPermanent(err error) bool {
	var p PermanentError
	return errors.As(err, &p)
}
