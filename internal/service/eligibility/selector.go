package eligibility

import (
	"context"
	"fmt"

	"service-fleet-dispatch/internal/domain"
)

// DefaultPoolCap bounds notification fan-out when no cap is configured.
const DefaultPoolCap = 20

// Selector computes the candidate pool for a booking.
type Selector struct {
	repo   vehicleLister
	ranker Ranker
	cap    int
}

// NewSelector creates a new Selector. A nil ranker means LeastTrips.
func NewSelector(repo vehicleLister, ranker Ranker, poolCap int) *Selector {
	if ranker == nil {
		ranker = LeastTrips{}
	}
	if poolCap <= 0 {
		poolCap = DefaultPoolCap
	}
	return &Selector{repo: repo, ranker: ranker, cap: poolCap}
}

// Select returns available, active vehicles that seat the booking's passengers,
// ranked and capped.
func (s *Selector) Select(ctx context.Context, b domain.Booking) ([]domain.Vehicle, error) {
	passengers := b.PassengerCount
	if passengers < 1 {
		passengers = 1
	}

	vehicles, err := s.repo.ListEligible(ctx, passengers)
	if err != nil {
		return nil, fmt.Errorf("select pool for booking %s: %w", b.ID, err)
	}

	pool := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.EligibleFor(passengers) {
			pool = append(pool, v)
		}
	}

	pool = s.ranker.Rank(pool)
	if len(pool) > s.cap {
		pool = pool[:s.cap]
	}
	return pool, nil
}
