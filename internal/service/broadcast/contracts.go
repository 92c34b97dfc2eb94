//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=broadcast_test

package broadcast

import (
	"context"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/notify"
	"service-fleet-dispatch/internal/ports/offertx"
)

type bookingReader interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListOperationsStaff(ctx context.Context) ([]domain.Staff, error)
}

type offerStore interface {
	WithTx(ctx context.Context, fn func(tx offertx.Repository) error) error
}

type poolSelector interface {
	Select(ctx context.Context, b domain.Booking) ([]domain.Vehicle, error)
}

type deliverer interface {
	Deliver(ctx context.Context, ns []domain.Notification) notify.Report
}

type metricsRecorder interface {
	Broadcast(offers int)
}
