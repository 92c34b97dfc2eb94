package domain

import "regexp"

// List of possible booking statuses
const (
	BookingUnassigned           BookingStatus = "unassigned"
	BookingAwaitingConfirmation BookingStatus = "awaiting_confirmation"
	BookingAssigned             BookingStatus = "assigned"
)

// List of possible vehicle statuses
const (
	VehicleAvailable VehicleStatus = "available"
	VehicleBusy      VehicleStatus = "busy"
	VehicleInactive  VehicleStatus = "inactive"
)

// List of possible offer statuses
const (
	OfferPending   OfferStatus = "pending"
	OfferConfirmed OfferStatus = "confirmed"
	OfferRejected  OfferStatus = "rejected"
	OfferExpired   OfferStatus = "expired"
)

// Notification channels, statuses and kinds
const (
	ChannelSMS          NotificationChannel = "sms"
	ChannelMessagingApp NotificationChannel = "messaging_app"

	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"

	KindOffer        NotificationKind = "offer"
	KindManagerAlert NotificationKind = "manager_alert"
)

// AssignerCTVConfirmation is recorded as assigner when no actor is supplied.
const AssignerCTVConfirmation = "ctv_confirmation"

// OperationsRoles lists staff roles that receive manager alerts.
var OperationsRoles = []string{"admin", "manager", "dispatcher"}

var allowedActions = [...]OfferAction{ActionConfirm, ActionReject}

// Valid checks if the OfferAction is valid
func (a OfferAction) Valid() bool {
	for _, v := range allowedActions {
		if a == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the offer status can no longer change.
func (s OfferStatus) Terminal() bool {
	return s == OfferConfirmed || s == OfferRejected || s == OfferExpired
}

// rePhone is a loose E.164 check for SMS recipients
var rePhone = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
