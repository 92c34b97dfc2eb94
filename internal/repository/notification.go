package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-fleet-dispatch/internal/domain"
)

// NotificationRepo tracks delivery of notification intents.
type NotificationRepo struct{ db *pgxpool.Pool }

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo { return &NotificationRepo{db: db} }

// MarkSent - mark notification as delivered.
func (r *NotificationRepo) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
        UPDATE notifications
        SET status = $2, sent_at = $3, error = NULL
        WHERE id = $1
    `, id, string(domain.NotificationSent), at)
	if err != nil {
		return fmt.Errorf("mark notification %s sent: %w", id, err)
	}
	return nil
}

// MarkFailed - mark notification as failed with the dispatch error.
func (r *NotificationRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE notifications
        SET status = $2, error = $3
        WHERE id = $1
    `, id, string(domain.NotificationFailed), reason)
	if err != nil {
		return fmt.Errorf("mark notification %s failed: %w", id, err)
	}
	return nil
}

// ListByBooking returns the notifications recorded for a booking.
func (r *NotificationRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, offer_id, booking_id, kind, channel, recipient, body, status, error, created_at, sent_at
        FROM notifications
        WHERE booking_id = $1
        ORDER BY created_at, id
    `, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list notifications of booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.OfferID, &n.BookingID, &n.Kind, &n.Channel, &n.Recipient, &n.Body,
			&n.Status, &n.Error, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
