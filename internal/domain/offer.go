package domain

import (
	"time"

	"github.com/google/uuid"
)

// OfferStatus represents the lifecycle state of an offer.
type OfferStatus string

// Offer is a time-boxed invitation for one vehicle to take one booking.
type Offer struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	VehicleID   uuid.UUID
	Status      OfferStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time
	PriceOffer  *float64
	Notes       *string
	ConfirmedAt *time.Time
	RespondedAt *time.Time
}

// ExpiredAt reports whether the offer deadline has passed at now.
func (o Offer) ExpiredAt(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Live reports whether the offer can still be resolved at now.
func (o Offer) Live(now time.Time) bool {
	return o.Status == OfferPending && !o.ExpiredAt(now)
}

// OfferAction is a candidate's response to an offer.
type OfferAction string

// Offer actions
const (
	ActionConfirm OfferAction = "confirm"
	ActionReject  OfferAction = "reject"
)

// Resolution carries a candidate's response to one offer.
type Resolution struct {
	OfferID    uuid.UUID
	Action     OfferAction
	PriceOffer *float64
	Notes      *string
	Actor      string
}

// ResolveResult - struct representing the outcome of a resolution.
type ResolveResult struct {
	OfferID        uuid.UUID
	BookingID      uuid.UUID
	VehicleID      uuid.UUID
	Action         OfferAction
	Status         OfferStatus
	AssignmentID   uuid.UUID
	SiblingsVoided int64
}
