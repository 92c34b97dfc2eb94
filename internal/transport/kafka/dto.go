package kafka

import (
	"strings"
	"time"

	"service-fleet-dispatch/internal/service/responses"
)

// EventDTO is a data transfer object for responses.Event
type EventDTO struct {
	OfferID    string    `json:"offer_id"`
	Action     string    `json:"action"`
	PriceOffer *float64  `json:"price_offer,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	Channel    string    `json:"channel"`
	Sender     string    `json:"sender"`
	ReceivedAt time.Time `json:"received_at"`
}

// ToDomain converts EventDTO to responses.Event
func ToDomain(dto EventDTO) responses.Event {
	return responses.Event{
		OfferID:    strings.TrimSpace(dto.OfferID),
		Action:     strings.TrimSpace(dto.Action),
		PriceOffer: dto.PriceOffer,
		Notes:      dto.Notes,
		Channel:    strings.TrimSpace(dto.Channel),
		Sender:     strings.TrimSpace(dto.Sender),
		ReceivedAt: dto.ReceivedAt,
	}
}
