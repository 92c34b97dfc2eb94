package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/service/broadcast"
)

func (r broadcastRequest) toModel() (broadcast.Request, error) {
	id, err := uuid.Parse(strings.TrimSpace(r.BookingID))
	if err != nil {
		return broadcast.Request{}, fmt.Errorf("bookingId: %w", apperr.ErrInvalid)
	}
	return broadcast.Request{
		BookingID:      id,
		NotifyManagers: boolOr(r.NotifyManagers, true),
		NotifyCTV:      boolOr(r.NotifyCTV, true),
	}, nil
}

func (r resolveRequest) toModel(actor string) (domain.Resolution, error) {
	id, err := uuid.Parse(strings.TrimSpace(r.ConfirmationID))
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("confirmationId: %w", apperr.ErrInvalid)
	}
	return domain.Resolution{
		OfferID:    id,
		Action:     domain.OfferAction(strings.ToLower(strings.TrimSpace(r.Action))),
		PriceOffer: r.PriceOffer,
		Notes:      r.Notes,
		Actor:      actor,
	}, nil
}

func broadcastResultToResponse(res domain.BroadcastResult) broadcastResponse {
	return broadcastResponse{
		Success:           true,
		NotificationsSent: res.NotificationsSent,
		OffersCreated:     res.OffersCreated,
	}
}

func resolveResultToResponse(res domain.ResolveResult) resolveResponse {
	msg := "offer rejected"
	if res.Action == domain.ActionConfirm {
		msg = "vehicle assigned to booking"
	}
	return resolveResponse{
		Success: true,
		Action:  string(res.Action),
		Message: msg,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
