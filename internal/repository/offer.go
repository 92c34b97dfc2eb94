package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/ports/offertx"
)

const offerColumns = `id, booking_id, vehicle_id, status, created_at, expires_at,
	price_offer, notes, confirmed_at, responded_at`

// OfferRepo represents offer repository.
type OfferRepo struct {
	db *pgxpool.Pool
}

// NewOfferRepo creates a new OfferRepo.
func NewOfferRepo(db *pgxpool.Pool) *OfferRepo {
	return &OfferRepo{db: db}
}

func scanOffer(row rowScanner) (*domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(&o.ID, &o.BookingID, &o.VehicleID, &o.Status, &o.CreatedAt, &o.ExpiresAt,
		&o.PriceOffer, &o.Notes, &o.ConfirmedAt, &o.RespondedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *OfferRepo) WithTx(ctx context.Context, fn func(tx offertx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if IsDuplicate(err) {
			return apperr.ErrAlreadyResolved
		}
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetOffer returns an offer by id, or nil when it does not exist.
func (r *OfferRepo) GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	o, err := scanOffer(r.db.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM vehicle_offers WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer %s: %w", id, err)
	}
	return o, nil
}

// ListByBooking returns every offer of a booking, oldest first.
func (r *OfferRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Offer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+offerColumns+` FROM vehicle_offers WHERE booking_id = $1 ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list offers of booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	var out []domain.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// RejectOffer moves a live pending offer to rejected. It reports false when the
// offer was no longer pending or its deadline had passed.
func (r *OfferRepo) RejectOffer(ctx context.Context, id uuid.UUID, now time.Time, notes *string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE vehicle_offers
        SET status = $3,
            notes = COALESCE($4, notes),
            responded_at = $2
        WHERE id = $1
          AND status = $5
          AND expires_at > $2
    `, id, now, string(domain.OfferRejected), notes, string(domain.OfferPending))
	if err != nil {
		return false, fmt.Errorf("reject offer %s: %w", id, err)
	}
	return ct.RowsAffected() == 1, nil
}

// ExpireOffer moves a pending offer past its deadline to expired.
func (r *OfferRepo) ExpireOffer(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE vehicle_offers
        SET status = $3, responded_at = $2
        WHERE id = $1
          AND status = $4
          AND expires_at <= $2
    `, id, now, string(domain.OfferExpired), string(domain.OfferPending))
	if err != nil {
		return false, fmt.Errorf("expire offer %s: %w", id, err)
	}
	return ct.RowsAffected() == 1, nil
}

// ExpireStale expires every pending offer whose deadline is not after now.
func (r *OfferRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE vehicle_offers
        SET status = $2, responded_at = $1
        WHERE status = $3
          AND expires_at <= $1
    `, now, string(domain.OfferExpired), string(domain.OfferPending))
	if err != nil {
		return 0, fmt.Errorf("expire stale offers: %w", err)
	}
	return ct.RowsAffected(), nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// LockBooking reads a booking and holds its row lock until the transaction ends.
func (r *TxRepo) LockBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := scanBooking(r.tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock booking %s: %w", id, err)
	}
	return b, nil
}

// HasLiveOffers reports whether the booking has a pending offer whose deadline is after now.
func (r *TxRepo) HasLiveOffers(ctx context.Context, bookingID uuid.UUID, now time.Time) (bool, error) {
	var live bool
	err := r.tx.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM vehicle_offers
            WHERE booking_id = $1 AND status = $2 AND expires_at > $3
        )
    `, bookingID, string(domain.OfferPending), now).Scan(&live)
	if err != nil {
		return false, fmt.Errorf("check live offers of booking %s: %w", bookingID, err)
	}
	return live, nil
}

// InsertOffers - insert offers in one batch.
func (r *TxRepo) InsertOffers(ctx context.Context, offers []domain.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, o := range offers {
		batch.Queue(`
            INSERT INTO vehicle_offers (id, booking_id, vehicle_id, status, created_at, expires_at, price_offer, notes)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        `, o.ID, o.BookingID, o.VehicleID, string(o.Status), o.CreatedAt, o.ExpiresAt, o.PriceOffer, o.Notes)
	}
	if err := r.tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert offers: %w", err)
	}
	return nil
}

// InsertNotifications - insert notification intents in one batch.
func (r *TxRepo) InsertNotifications(ctx context.Context, ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(`
            INSERT INTO notifications (id, offer_id, booking_id, kind, channel, recipient, body, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        `, n.ID, n.OfferID, n.BookingID, string(n.Kind), string(n.Channel), n.Recipient, n.Body,
			string(n.Status), n.CreatedAt)
	}
	if err := r.tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

// ConfirmOffer moves a live pending offer to confirmed. It reports false when
// the offer was no longer pending or its deadline had passed.
func (r *TxRepo) ConfirmOffer(ctx context.Context, id uuid.UUID, now time.Time, price *float64, notes *string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE vehicle_offers
        SET status = $3,
            price_offer = COALESCE($4, price_offer),
            notes = COALESCE($5, notes),
            confirmed_at = $2,
            responded_at = $2
        WHERE id = $1
          AND status = $6
          AND expires_at > $2
    `, id, now, string(domain.OfferConfirmed), price, notes, string(domain.OfferPending))
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrAlreadyResolved
		}
		return false, fmt.Errorf("confirm offer %s: %w", id, err)
	}
	return ct.RowsAffected() == 1, nil
}

// InsertAssignment - insert an assignment; a second one for the same booking is rejected.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO vehicle_assignments (id, booking_id, vehicle_id, assigned_by, start_time, auto_assigned, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, a.ID, a.BookingID, a.VehicleID, a.AssignedBy, a.StartTime, a.AutoAssigned, a.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrAlreadyResolved
		}
		return fmt.Errorf("insert assignment for booking %s: %w", a.BookingID, err)
	}
	return nil
}

// UpdateBookingStatus - update booking status.
func (r *TxRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE bookings
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(status))
	if err != nil {
		return fmt.Errorf("update booking status %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// MarkVehicleBusy sets the vehicle busy and counts the trip.
func (r *TxRepo) MarkVehicleBusy(ctx context.Context, id uuid.UUID) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE ctv_vehicles
        SET status = $2,
            trip_count = trip_count + 1,
            updated_at = now()
        WHERE id = $1
    `, id, string(domain.VehicleBusy))
	if err != nil {
		return fmt.Errorf("mark vehicle busy %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// RejectSiblings rejects every other pending offer of the booking.
func (r *TxRepo) RejectSiblings(ctx context.Context, bookingID, winnerID uuid.UUID, now time.Time) (int64, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE vehicle_offers
        SET status = $4, responded_at = $3
        WHERE booking_id = $1
          AND id <> $2
          AND status = $5
    `, bookingID, winnerID, now, string(domain.OfferRejected), string(domain.OfferPending))
	if err != nil {
		return 0, fmt.Errorf("reject sibling offers of booking %s: %w", bookingID, err)
	}
	return ct.RowsAffected(), nil
}
