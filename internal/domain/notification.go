package domain

import (
	"time"

	"github.com/google/uuid"
)

type (
	// NotificationChannel is the outbound channel of a notification.
	NotificationChannel string
	// NotificationStatus is the delivery status of a notification.
	NotificationStatus string
	// NotificationKind tells offer invitations apart from staff alerts.
	NotificationKind string
)

// Notification is one outbound message, written before dispatch and updated after.
type Notification struct {
	ID        uuid.UUID
	OfferID   *uuid.UUID
	BookingID uuid.UUID
	Kind      NotificationKind
	Channel   NotificationChannel
	Recipient string
	Body      string
	Status    NotificationStatus
	Error     *string
	CreatedAt time.Time
	SentAt    *time.Time
}
