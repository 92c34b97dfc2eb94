package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent; every statement uses IF NOT EXISTS.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id               UUID PRIMARY KEY,
		booking_code     TEXT NOT NULL DEFAULT '',
		customer_name    TEXT NOT NULL DEFAULT '',
		pickup_location  TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		pickup_time      TIMESTAMPTZ NOT NULL,
		return_time      TIMESTAMPTZ,
		passenger_count  INT NOT NULL DEFAULT 1,
		price            DOUBLE PRECISION NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'unassigned',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ctv_vehicles (
		id               UUID PRIMARY KEY,
		license_plate    TEXT NOT NULL UNIQUE,
		driver_name      TEXT NOT NULL DEFAULT '',
		seats            INT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'available',
		is_active        BOOLEAN NOT NULL DEFAULT true,
		phone            TEXT NOT NULL DEFAULT '',
		messenger_handle TEXT NOT NULL DEFAULT '',
		trip_count       INT NOT NULL DEFAULT 0,
		rating           DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id        UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		phone     TEXT NOT NULL DEFAULT '',
		role      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vehicle_offers (
		id           UUID PRIMARY KEY,
		booking_id   UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		vehicle_id   UUID NOT NULL REFERENCES ctv_vehicles(id) ON DELETE CASCADE,
		status       TEXT NOT NULL DEFAULT 'pending',
		created_at   TIMESTAMPTZ NOT NULL,
		expires_at   TIMESTAMPTZ NOT NULL,
		price_offer  DOUBLE PRECISION,
		notes        TEXT,
		confirmed_at TIMESTAMPTZ,
		responded_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS vehicle_offers_booking_status_idx ON vehicle_offers (booking_id, status)`,
	`CREATE INDEX IF NOT EXISTS vehicle_offers_pending_expiry_idx ON vehicle_offers (expires_at) WHERE status = 'pending'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS vehicle_offers_one_confirmed_idx ON vehicle_offers (booking_id) WHERE status = 'confirmed'`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id         UUID PRIMARY KEY,
		offer_id   UUID REFERENCES vehicle_offers(id) ON DELETE SET NULL,
		booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		kind       TEXT NOT NULL,
		channel    TEXT NOT NULL,
		recipient  TEXT NOT NULL,
		body       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending',
		error      TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		sent_at    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS vehicle_assignments (
		id            UUID PRIMARY KEY,
		booking_id    UUID NOT NULL UNIQUE REFERENCES bookings(id) ON DELETE CASCADE,
		vehicle_id    UUID NOT NULL REFERENCES ctv_vehicles(id),
		assigned_by   TEXT NOT NULL,
		start_time    TIMESTAMPTZ NOT NULL,
		auto_assigned BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
