package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-fleet-dispatch/internal/domain"
)

const bookingColumns = `id, booking_code, customer_name, pickup_location, dropoff_location,
	pickup_time, return_time, passenger_count, price, status`

// BookingRepo reads bookings and operations staff.
type BookingRepo struct{ db *pgxpool.Pool }

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(db *pgxpool.Pool) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.Code, &b.CustomerName, &b.PickupLocation, &b.DropoffLocation,
		&b.PickupTime, &b.ReturnTime, &b.PassengerCount, &b.Price, &b.Status)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBooking returns a booking by id, or nil when it does not exist.
func (r *BookingRepo) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

// ListOperationsStaff returns staff members whose role receives manager alerts.
func (r *BookingRepo) ListOperationsStaff(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, full_name, phone, role
        FROM staff
        WHERE role = ANY($1)
        ORDER BY full_name, id
    `, domain.OperationsRoles)
	if err != nil {
		return nil, fmt.Errorf("list operations staff: %w", err)
	}
	defer rows.Close()

	var out []domain.Staff
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.FullName, &s.Phone, &s.Role); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
