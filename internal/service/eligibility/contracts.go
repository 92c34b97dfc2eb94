package eligibility

import (
	"context"

	"service-fleet-dispatch/internal/domain"
)

type vehicleLister interface {
	ListEligible(ctx context.Context, passengers int) ([]domain.Vehicle, error)
}

// Ranker orders an eligible pool; the first entries receive offers when the pool exceeds the cap.
type Ranker interface {
	Rank(vehicles []domain.Vehicle) []domain.Vehicle
}
