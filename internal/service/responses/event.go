package responses

import (
	"time"
)

// Event is a candidate's reply relayed by the SMS gateway or messaging bot.
type Event struct {
	OfferID    string
	Action     string
	PriceOffer *float64
	Notes      *string
	Channel    string
	Sender     string
	ReceivedAt time.Time
}
