package broadcast

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/ports/offertx"
)

// DefaultTTL is how long a candidate has to answer an offer.
const DefaultTTL = 30 * time.Minute

// Request is a broadcast for one booking.
type Request struct {
	BookingID      uuid.UUID
	NotifyManagers bool
	NotifyCTV      bool
}

// Config - broadcaster settings.
type Config struct {
	TTL              time.Duration
	OperationTimeout time.Duration
	DispatchTimeout  time.Duration
}

// Broadcaster fans a booking out to its candidate pool.
type Broadcaster struct {
	bookings bookingReader
	offers   offerStore
	selector poolSelector
	outbox   deliverer
	metrics  metricsRecorder
	cfg      Config
	logger   logx.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// New creates a new Broadcaster. metrics may be nil.
func New(bookings bookingReader, offers offerStore, selector poolSelector, outbox deliverer,
	metrics metricsRecorder, cfg Config, logger logx.Logger) *Broadcaster {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 3 * time.Second
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Broadcaster{
		bookings: bookings,
		offers:   offers,
		selector: selector,
		outbox:   outbox,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.New,
	}
}

// Broadcast creates one pending offer per eligible vehicle and notifies candidates
// and operations staff. Notification failures are counted, not returned.
func (b *Broadcaster) Broadcast(ctx context.Context, req Request) (domain.BroadcastResult, error) {
	if req.BookingID == uuid.Nil {
		return domain.BroadcastResult{}, apperr.ErrInvalid
	}

	opCtx, cancel := context.WithTimeout(ctx, b.cfg.OperationTimeout)
	defer cancel()

	booking, err := b.bookings.GetBooking(opCtx, req.BookingID)
	if err != nil {
		return domain.BroadcastResult{}, err
	}
	if booking == nil {
		return domain.BroadcastResult{}, apperr.ErrNotFound
	}
	if booking.Status == domain.BookingAssigned {
		return domain.BroadcastResult{}, apperr.ErrConflict
	}

	var pool []domain.Vehicle
	if req.NotifyCTV {
		pool, err = b.selector.Select(opCtx, *booking)
		if err != nil {
			return domain.BroadcastResult{}, err
		}
	}

	var staff []domain.Staff
	if req.NotifyManagers {
		staff, err = b.bookings.ListOperationsStaff(opCtx)
		if err != nil {
			return domain.BroadcastResult{}, err
		}
	}

	now := b.now()
	offers, notifications := b.plan(*booking, pool, staff, req, now)

	err = b.offers.WithTx(opCtx, func(tx offertx.Repository) error {
		locked, err := tx.LockBooking(opCtx, booking.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperr.ErrNotFound
		}
		if locked.Status == domain.BookingAssigned {
			return apperr.ErrConflict
		}
		// Only new offers can duplicate live ones; a staff-only alert goes through.
		if len(offers) > 0 {
			live, err := tx.HasLiveOffers(opCtx, booking.ID, now)
			if err != nil {
				return err
			}
			if live {
				return apperr.ErrConflict
			}
		}
		if err := tx.InsertOffers(opCtx, offers); err != nil {
			return err
		}
		return tx.InsertNotifications(opCtx, notifications)
	})
	if err != nil {
		return domain.BroadcastResult{}, err
	}

	dispatchCtx, cancelDispatch := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.DispatchTimeout)
	defer cancelDispatch()
	report := b.outbox.Deliver(dispatchCtx, notifications)

	if b.metrics != nil {
		b.metrics.Broadcast(len(offers))
	}

	result := domain.BroadcastResult{
		BookingID:           booking.ID,
		OffersCreated:       len(offers),
		NotificationsSent:   report.Sent,
		NotificationsFailed: report.Failed,
	}

	b.logger.Info("offers broadcast",
		logx.String("event", "offer_broadcast"),
		logx.Stringer("booking_id", booking.ID),
		logx.Int("offers", result.OffersCreated),
		logx.Int("staff", len(staff)),
		logx.Int("sent", result.NotificationsSent),
		logx.Int("failed", result.NotificationsFailed),
		logx.Time("expires_at", now.Add(b.cfg.TTL)),
	)

	return result, nil
}

// plan builds the offer rows and notification intents of a broadcast.
func (b *Broadcaster) plan(booking domain.Booking, pool []domain.Vehicle, staff []domain.Staff,
	req Request, now time.Time) ([]domain.Offer, []domain.Notification) {
	offers := make([]domain.Offer, 0, len(pool))
	notifications := make([]domain.Notification, 0, 2*len(pool)+len(staff))

	intent := func(offerID *uuid.UUID, kind domain.NotificationKind, ch domain.NotificationChannel, to, body string) {
		notifications = append(notifications, domain.Notification{
			ID:        b.newID(),
			OfferID:   offerID,
			BookingID: booking.ID,
			Kind:      kind,
			Channel:   ch,
			Recipient: to,
			Body:      body,
			Status:    domain.NotificationPending,
			CreatedAt: now,
		})
	}

	if req.NotifyManagers {
		body := managerBody(booking, req.NotifyCTV, len(pool), b.cfg.TTL)
		for _, s := range staff {
			phone := strings.TrimSpace(s.Phone)
			if phone == "" {
				continue
			}
			if !domain.ValidatePhone(phone) {
				b.logger.Warn("staff phone skipped",
					logx.Stringer("staff_id", s.ID),
					logx.String("phone", phone),
				)
				continue
			}
			intent(nil, domain.KindManagerAlert, domain.ChannelSMS, phone, body)
		}
	}

	for _, v := range pool {
		o := domain.Offer{
			ID:        b.newID(),
			BookingID: booking.ID,
			VehicleID: v.ID,
			Status:    domain.OfferPending,
			CreatedAt: now,
			ExpiresAt: now.Add(b.cfg.TTL),
		}
		offers = append(offers, o)

		offerID := o.ID
		body := offerBody(booking, o)
		if h := strings.TrimSpace(v.MessengerHandle); h != "" {
			intent(&offerID, domain.KindOffer, domain.ChannelMessagingApp, h, body)
		}
		if p := strings.TrimSpace(v.Phone); p != "" {
			intent(&offerID, domain.KindOffer, domain.ChannelSMS, p, body)
		}
	}

	return offers, notifications
}
