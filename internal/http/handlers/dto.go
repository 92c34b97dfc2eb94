package handlers

type broadcastRequest struct {
	BookingID      string `json:"bookingId"`
	NotifyManagers *bool  `json:"notifyManagers,omitempty"`
	NotifyCTV      *bool  `json:"notifyCTV,omitempty"`
}

type broadcastResponse struct {
	Success           bool `json:"success"`
	NotificationsSent int  `json:"notificationsSent"`
	OffersCreated     int  `json:"offersCreated"`
}

type resolveRequest struct {
	ConfirmationID string   `json:"confirmationId"`
	Action         string   `json:"action"`
	PriceOffer     *float64 `json:"priceOffer,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

type resolveResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
