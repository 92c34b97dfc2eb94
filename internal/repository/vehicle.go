package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-fleet-dispatch/internal/domain"
)

// VehicleRepo reads partner vehicles.
type VehicleRepo struct{ db *pgxpool.Pool }

// NewVehicleRepo creates a new VehicleRepo.
func NewVehicleRepo(db *pgxpool.Pool) *VehicleRepo { return &VehicleRepo{db: db} }

// ListEligible returns available, active vehicles with at least `passengers` seats,
// least-loaded first.
func (r *VehicleRepo) ListEligible(ctx context.Context, passengers int) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, license_plate, driver_name, seats, status, is_active,
               phone, messenger_handle, trip_count, rating
        FROM ctv_vehicles
        WHERE status = $1
          AND is_active
          AND seats >= $2
        ORDER BY trip_count ASC, rating DESC, id ASC
    `, string(domain.VehicleAvailable), passengers)
	if err != nil {
		return nil, fmt.Errorf("list eligible vehicles: %w", err)
	}
	defer rows.Close()

	var out []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.DriverName, &v.Seats, &v.Status, &v.IsActive,
			&v.Phone, &v.MessengerHandle, &v.TripCount, &v.Rating); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
