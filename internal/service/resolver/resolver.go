package resolver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/ports/offertx"
)

// errClaimMissed means the conditional update found the offer no longer claimable.
var errClaimMissed = errors.New("offer claim missed")

// errBookingTaken means the booking was assigned without this offer winning.
var errBookingTaken = errors.New("booking already assigned")

// Resolver applies candidate responses to offers.
type Resolver struct {
	offers           offerStore
	staff            staffLister
	outbox           deliverer
	metrics          metricsRecorder
	operationTimeout time.Duration
	dispatchTimeout  time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() uuid.UUID
}

// New creates a new Resolver. staff, outbox and metrics may be nil.
func New(offers offerStore, staff staffLister, outbox deliverer, metrics metricsRecorder,
	timeout time.Duration, logger logx.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Resolver{
		offers:           offers,
		staff:            staff,
		outbox:           outbox,
		metrics:          metrics,
		operationTimeout: timeout,
		dispatchTimeout:  30 * time.Second,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.New,
	}
}

func (r *Resolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.operationTimeout)
}

// Resolve confirms or rejects one offer. The first confirmation of a booking wins;
// every later response on that booking yields apperr.ErrAlreadyResolved, and a
// response on an expired offer yields apperr.ErrExpired.
func (r *Resolver) Resolve(ctx context.Context, res domain.Resolution) (result domain.ResolveResult, err error) {
	defer func() { r.record(res.Action, err) }()

	res, err = normalize(res)
	if err != nil {
		return domain.ResolveResult{}, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	offer, err := r.offers.GetOffer(ctx, res.OfferID)
	if err != nil {
		return domain.ResolveResult{}, err
	}
	if offer == nil {
		return domain.ResolveResult{}, apperr.ErrNotFound
	}
	if offer.Status == domain.OfferExpired {
		return domain.ResolveResult{}, apperr.ErrExpired
	}
	if offer.Status != domain.OfferPending {
		return domain.ResolveResult{}, apperr.ErrAlreadyResolved
	}

	now := r.now()
	if offer.ExpiredAt(now) {
		return domain.ResolveResult{}, r.expire(ctx, offer, now)
	}

	switch res.Action {
	case domain.ActionReject:
		return r.reject(ctx, offer, res, now)
	default:
		return r.confirm(ctx, offer, res, now)
	}
}

func normalize(res domain.Resolution) (domain.Resolution, error) {
	if res.OfferID == uuid.Nil || !res.Action.Valid() {
		return res, apperr.ErrInvalid
	}
	if p := res.PriceOffer; p != nil && (*p < 0 || math.IsNaN(*p) || math.IsInf(*p, 0)) {
		return res, apperr.ErrInvalid
	}
	if res.Notes != nil {
		n := strings.TrimSpace(*res.Notes)
		if n == "" {
			res.Notes = nil
		} else {
			res.Notes = &n
		}
	}
	res.Actor = strings.TrimSpace(res.Actor)
	if res.Actor == "" {
		res.Actor = domain.AssignerCTVConfirmation
	}
	return res, nil
}

// expire moves a pending offer past its deadline to expired and reports ErrExpired.
func (r *Resolver) expire(ctx context.Context, offer *domain.Offer, now time.Time) error {
	ok, err := r.offers.ExpireOffer(ctx, offer.ID, now)
	if err != nil {
		return err
	}
	if ok {
		r.logger.Info("offer expired on touch",
			logx.String("event", "offer_expired"),
			logx.Stringer("offer_id", offer.ID),
			logx.Stringer("booking_id", offer.BookingID),
			logx.Time("expires_at", offer.ExpiresAt),
		)
	}
	return apperr.ErrExpired
}

// classify explains why a conditional update on a pending-looking offer missed.
func (r *Resolver) classify(ctx context.Context, id uuid.UUID, now time.Time) error {
	offer, err := r.offers.GetOffer(ctx, id)
	if err != nil {
		return err
	}
	if offer == nil {
		return apperr.ErrNotFound
	}
	if offer.Status == domain.OfferPending && offer.ExpiredAt(now) {
		return r.expire(ctx, offer, now)
	}
	if offer.Status == domain.OfferExpired {
		return apperr.ErrExpired
	}
	return apperr.ErrAlreadyResolved
}

func (r *Resolver) reject(ctx context.Context, offer *domain.Offer, res domain.Resolution, now time.Time) (domain.ResolveResult, error) {
	ok, err := r.offers.RejectOffer(ctx, offer.ID, now, res.Notes)
	if err != nil {
		return domain.ResolveResult{}, err
	}
	if !ok {
		return domain.ResolveResult{}, r.classify(ctx, offer.ID, now)
	}

	r.logger.Info("offer rejected",
		logx.String("event", "offer_rejected"),
		logx.Stringer("offer_id", offer.ID),
		logx.Stringer("booking_id", offer.BookingID),
		logx.Stringer("vehicle_id", offer.VehicleID),
	)

	return domain.ResolveResult{
		OfferID:   offer.ID,
		BookingID: offer.BookingID,
		VehicleID: offer.VehicleID,
		Action:    domain.ActionReject,
		Status:    domain.OfferRejected,
	}, nil
}

func (r *Resolver) confirm(ctx context.Context, offer *domain.Offer, res domain.Resolution, now time.Time) (domain.ResolveResult, error) {
	staff := r.operationsStaff(ctx)

	var (
		result domain.ResolveResult
		alerts []domain.Notification
	)
	err := r.offers.WithTx(ctx, func(tx offertx.Repository) error {
		booking, err := tx.LockBooking(ctx, offer.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperr.ErrNotFound
		}
		if booking.Status == domain.BookingAssigned {
			return errBookingTaken
		}

		ok, err := tx.ConfirmOffer(ctx, offer.ID, now, res.PriceOffer, res.Notes)
		if err != nil {
			return err
		}
		if !ok {
			return errClaimMissed
		}

		a := &domain.Assignment{
			ID:           r.newID(),
			BookingID:    booking.ID,
			VehicleID:    offer.VehicleID,
			AssignedBy:   res.Actor,
			StartTime:    booking.PickupTime,
			AutoAssigned: false,
			CreatedAt:    now,
		}
		if err := tx.InsertAssignment(ctx, a); err != nil {
			return err
		}
		if err := tx.UpdateBookingStatus(ctx, booking.ID, domain.BookingAssigned); err != nil {
			return err
		}
		if err := tx.MarkVehicleBusy(ctx, offer.VehicleID); err != nil {
			return err
		}
		voided, err := tx.RejectSiblings(ctx, booking.ID, offer.ID, now)
		if err != nil {
			return err
		}

		alerts = r.assignedAlerts(*booking, offer, staff, now)
		if err := tx.InsertNotifications(ctx, alerts); err != nil {
			return err
		}

		result = domain.ResolveResult{
			OfferID:        offer.ID,
			BookingID:      booking.ID,
			VehicleID:      offer.VehicleID,
			Action:         domain.ActionConfirm,
			Status:         domain.OfferConfirmed,
			AssignmentID:   a.ID,
			SiblingsVoided: voided,
		}
		return nil
	})
	if errors.Is(err, errClaimMissed) {
		return domain.ResolveResult{}, r.classify(ctx, offer.ID, now)
	}
	if errors.Is(err, errBookingTaken) {
		r.closeStale(ctx, offer, now)
		return domain.ResolveResult{}, apperr.ErrAlreadyResolved
	}
	if err != nil {
		return domain.ResolveResult{}, err
	}

	r.logger.Info("offer confirmed",
		logx.String("event", "offer_confirmed"),
		logx.Stringer("offer_id", result.OfferID),
		logx.Stringer("booking_id", result.BookingID),
		logx.Stringer("vehicle_id", result.VehicleID),
		logx.Stringer("assignment_id", result.AssignmentID),
		logx.Int64("siblings_rejected", result.SiblingsVoided),
	)

	r.deliver(ctx, alerts)
	return result, nil
}

// closeStale rejects a pending offer whose booking was assigned elsewhere so
// it does not linger until the sweep. Failures are only logged.
func (r *Resolver) closeStale(ctx context.Context, offer *domain.Offer, now time.Time) {
	ok, err := r.offers.RejectOffer(ctx, offer.ID, now, nil)
	if err != nil {
		r.logger.Warn("stale offer reject failed",
			logx.Stringer("offer_id", offer.ID),
			logx.Stringer("booking_id", offer.BookingID),
			logx.Err(err),
		)
		return
	}
	if ok {
		r.logger.Info("stale offer rejected",
			logx.String("event", "offer_rejected"),
			logx.Stringer("offer_id", offer.ID),
			logx.Stringer("booking_id", offer.BookingID),
		)
	}
}

// operationsStaff is best effort; a failed lookup only drops the manager alert.
func (r *Resolver) operationsStaff(ctx context.Context) []domain.Staff {
	if r.staff == nil || r.outbox == nil {
		return nil
	}
	staff, err := r.staff.ListOperationsStaff(ctx)
	if err != nil {
		r.logger.Warn("operations staff lookup failed", logx.Err(err))
		return nil
	}
	return staff
}

func (r *Resolver) assignedAlerts(b domain.Booking, offer *domain.Offer, staff []domain.Staff, now time.Time) []domain.Notification {
	ref := b.Code
	if ref == "" {
		ref = b.ID.String()
	}
	body := fmt.Sprintf("Booking %s assigned: vehicle %s confirmed offer %s for pickup %s.",
		ref, offer.VehicleID, offer.ID, b.PickupTime.Format("02/01/2006 15:04"))

	var out []domain.Notification
	for _, s := range staff {
		phone := strings.TrimSpace(s.Phone)
		if !domain.ValidatePhone(phone) {
			continue
		}
		offerID := offer.ID
		out = append(out, domain.Notification{
			ID:        r.newID(),
			OfferID:   &offerID,
			BookingID: b.ID,
			Kind:      domain.KindManagerAlert,
			Channel:   domain.ChannelSMS,
			Recipient: phone,
			Body:      body,
			Status:    domain.NotificationPending,
			CreatedAt: now,
		})
	}
	return out
}

func (r *Resolver) deliver(ctx context.Context, ns []domain.Notification) {
	if len(ns) == 0 || r.outbox == nil {
		return
	}
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.dispatchTimeout)
	defer cancel()
	rep := r.outbox.Deliver(dctx, ns)
	if rep.Failed > 0 {
		r.logger.Warn("assignment alert partially delivered",
			logx.Int("sent", rep.Sent),
			logx.Int("failed", rep.Failed),
		)
	}
}

// ExpireStale expires every pending offer past its deadline.
func (r *Resolver) ExpireStale(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.offers.ExpireStale(ctx, r.now())
	if err != nil {
		return 0, err
	}
	if r.metrics != nil {
		r.metrics.Expired(n)
	}
	if n > 0 {
		r.logger.Info("stale offers expired",
			logx.String("event", "offers_swept"),
			logx.Int64("count", n),
		)
	}
	return n, nil
}

func (r *Resolver) record(action domain.OfferAction, err error) {
	if r.metrics == nil {
		return
	}
	r.metrics.Resolved(string(action), Outcome(action, err))
}

// Outcome names the result of a resolution for metrics and logs.
func Outcome(action domain.OfferAction, err error) string {
	switch {
	case err == nil && action == domain.ActionReject:
		return "rejected"
	case err == nil:
		return "confirmed"
	case errors.Is(err, apperr.ErrExpired):
		return "expired"
	case errors.Is(err, apperr.ErrAlreadyResolved):
		return "already_resolved"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}
