package domain

import "github.com/google/uuid"

// VehicleStatus represents the availability of a partner vehicle.
type VehicleStatus string

// Vehicle is an external partner (CTV) vehicle that can receive offers.
type Vehicle struct {
	ID              uuid.UUID
	LicensePlate    string
	DriverName      string
	Seats           int
	Status          VehicleStatus
	IsActive        bool
	Phone           string
	MessengerHandle string
	TripCount       int
	Rating          float64
}

// EligibleFor reports whether the vehicle can carry the given number of passengers right now.
func (v Vehicle) EligibleFor(passengers int) bool {
	return v.Status == VehicleAvailable && v.IsActive && v.Seats >= passengers
}
