package broadcast

import (
	"fmt"
	"time"

	"service-fleet-dispatch/internal/domain"
)

const timeLayout = "02/01/2006 15:04"

func bookingRef(b domain.Booking) string {
	if b.Code != "" {
		return b.Code
	}
	return b.ID.String()
}

func offerBody(b domain.Booking, o domain.Offer) string {
	return fmt.Sprintf(
		"New trip offer %s: %s -> %s, pickup %s, %d passengers, price %.0f. Reply before %s with code %s.",
		bookingRef(b), b.PickupLocation, b.DropoffLocation, b.PickupTime.Format(timeLayout),
		b.PassengerCount, b.Price, o.ExpiresAt.Format(timeLayout), o.ID,
	)
}

func managerBody(b domain.Booking, notifyCTV bool, pool int, ttl time.Duration) string {
	route := fmt.Sprintf("%s -> %s at %s", b.PickupLocation, b.DropoffLocation, b.PickupTime.Format(timeLayout))
	switch {
	case notifyCTV && pool == 0:
		return fmt.Sprintf("URGENT: no vehicle available for booking %s (%s). Assign manually.", bookingRef(b), route)
	case notifyCTV:
		return fmt.Sprintf("Booking %s needs a vehicle (%s). Offers sent to %d vehicles, valid for %s.",
			bookingRef(b), route, pool, ttl)
	default:
		return fmt.Sprintf("Booking %s needs a vehicle (%s).", bookingRef(b), route)
	}
}
