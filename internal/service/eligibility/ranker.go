package eligibility

import (
	"bytes"
	"sort"

	"service-fleet-dispatch/internal/domain"
)

// LeastTrips ranks the least-loaded vehicles first, then by rating, then by id.
type LeastTrips struct{}

// Rank sorts a copy of vehicles.
func (LeastTrips) Rank(vehicles []domain.Vehicle) []domain.Vehicle {
	out := make([]domain.Vehicle, len(vehicles))
	copy(out, vehicles)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TripCount != b.TripCount {
			return a.TripCount < b.TripCount
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
	return out
}

// RankerFunc adapts a plain function to Ranker.
type RankerFunc func([]domain.Vehicle) []domain.Vehicle

// Rank calls f.
func (f RankerFunc) Rank(vehicles []domain.Vehicle) []domain.Vehicle { return f(vehicles) }
