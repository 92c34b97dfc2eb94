package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the assignment status of a booking.
type BookingStatus string

// Booking is a transport request waiting for a vehicle.
type Booking struct {
	ID              uuid.UUID
	Code            string
	CustomerName    string
	PickupLocation  string
	DropoffLocation string
	PickupTime      time.Time
	ReturnTime      *time.Time
	PassengerCount  int
	Price           float64
	Status          BookingStatus
}

// Staff is an operations staff member that receives manager alerts.
type Staff struct {
	ID       uuid.UUID
	FullName string
	Phone    string
	Role     string
}
