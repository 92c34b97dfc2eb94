package offertx

import (
	"context"
	"time"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/domain"
)

// Repository is the set of offer-table operations that run inside one transaction.
type Repository interface {
	LockBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	HasLiveOffers(ctx context.Context, bookingID uuid.UUID, now time.Time) (bool, error)
	InsertOffers(ctx context.Context, offers []domain.Offer) error
	InsertNotifications(ctx context.Context, ns []domain.Notification) error
	ConfirmOffer(ctx context.Context, id uuid.UUID, now time.Time, price *float64, notes *string) (bool, error)
	InsertAssignment(ctx context.Context, a *domain.Assignment) error
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	MarkVehicleBusy(ctx context.Context, id uuid.UUID) error
	RejectSiblings(ctx context.Context, bookingID, winnerID uuid.UUID, now time.Time) (int64, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
