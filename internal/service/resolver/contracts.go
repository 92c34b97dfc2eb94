package resolver

import (
	"context"
	"time"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/notify"
	"service-fleet-dispatch/internal/ports/offertx"
)

type offerStore interface {
	GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	RejectOffer(ctx context.Context, id uuid.UUID, now time.Time, notes *string) (bool, error)
	ExpireOffer(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	WithTx(ctx context.Context, fn func(tx offertx.Repository) error) error
}

type staffLister interface {
	ListOperationsStaff(ctx context.Context) ([]domain.Staff, error)
}

type deliverer interface {
	Deliver(ctx context.Context, ns []domain.Notification) notify.Report
}

type metricsRecorder interface {
	Resolved(action, outcome string)
	Expired(n int64)
}
