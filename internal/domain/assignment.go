package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds a booking to the vehicle that will service it.
type Assignment struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	VehicleID    uuid.UUID
	AssignedBy   string
	StartTime    time.Time
	AutoAssigned bool
	CreatedAt    time.Time
}

// BroadcastResult - struct representing the result of an offer broadcast.
type BroadcastResult struct {
	BookingID           uuid.UUID
	OffersCreated       int
	NotificationsSent   int
	NotificationsFailed int
}
