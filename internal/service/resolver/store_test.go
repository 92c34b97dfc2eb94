package resolver_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/ports/offertx"
)

// memStore keeps the offer tables in memory. Transactions are serialized and
// rolled back by restoring a snapshot.
type memStore struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]domain.Booking
	vehicles      map[uuid.UUID]domain.Vehicle
	offers        map[uuid.UUID]domain.Offer
	assignments   map[uuid.UUID]domain.Assignment
	notifications []domain.Notification

	getErr error
}

func newMemStore() *memStore {
	return &memStore{
		bookings:    map[uuid.UUID]domain.Booking{},
		vehicles:    map[uuid.UUID]domain.Vehicle{},
		offers:      map[uuid.UUID]domain.Offer{},
		assignments: map[uuid.UUID]domain.Assignment{},
	}
}

func (s *memStore) seed(passengers int, expiresAt time.Time, vehicles int) (domain.Booking, []domain.Offer) {
	b := domain.Booking{
		ID: uuid.New(), Code: "BK-1", PickupTime: time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC),
		PassengerCount: passengers, Status: domain.BookingUnassigned,
	}
	s.bookings[b.ID] = b
	offers := make([]domain.Offer, 0, vehicles)
	for i := 0; i < vehicles; i++ {
		v := domain.Vehicle{ID: uuid.New(), Seats: 7, Status: domain.VehicleAvailable, IsActive: true, TripCount: i}
		s.vehicles[v.ID] = v
		o := domain.Offer{
			ID: uuid.New(), BookingID: b.ID, VehicleID: v.ID, Status: domain.OfferPending,
			CreatedAt: expiresAt.Add(-30 * time.Minute), ExpiresAt: expiresAt,
		}
		s.offers[o.ID] = o
		offers = append(offers, o)
	}
	return b, offers
}

func (s *memStore) offer(id uuid.UUID) domain.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offers[id]
}

func (s *memStore) GetOffer(_ context.Context, id uuid.UUID) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	o, ok := s.offers[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *memStore) RejectOffer(_ context.Context, id uuid.UUID, now time.Time, notes *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	if !ok || o.Status != domain.OfferPending || !now.Before(o.ExpiresAt) {
		return false, nil
	}
	o.Status = domain.OfferRejected
	o.RespondedAt = &now
	if notes != nil {
		o.Notes = notes
	}
	s.offers[id] = o
	return true, nil
}

func (s *memStore) ExpireOffer(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	if !ok || o.Status != domain.OfferPending || now.Before(o.ExpiresAt) {
		return false, nil
	}
	o.Status = domain.OfferExpired
	o.RespondedAt = &now
	s.offers[id] = o
	return true, nil
}

func (s *memStore) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, o := range s.offers {
		if o.Status == domain.OfferPending && !now.Before(o.ExpiresAt) {
			o.Status = domain.OfferExpired
			s.offers[id] = o
			n++
		}
	}
	return n, nil
}

func (s *memStore) WithTx(_ context.Context, fn func(tx offertx.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	bookings      map[uuid.UUID]domain.Booking
	vehicles      map[uuid.UUID]domain.Vehicle
	offers        map[uuid.UUID]domain.Offer
	assignments   map[uuid.UUID]domain.Assignment
	notifications []domain.Notification
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		bookings:      make(map[uuid.UUID]domain.Booking, len(s.bookings)),
		vehicles:      make(map[uuid.UUID]domain.Vehicle, len(s.vehicles)),
		offers:        make(map[uuid.UUID]domain.Offer, len(s.offers)),
		assignments:   make(map[uuid.UUID]domain.Assignment, len(s.assignments)),
		notifications: append([]domain.Notification(nil), s.notifications...),
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	for k, v := range s.vehicles {
		snap.vehicles[k] = v
	}
	for k, v := range s.offers {
		snap.offers[k] = v
	}
	for k, v := range s.assignments {
		snap.assignments[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.bookings = snap.bookings
	s.vehicles = snap.vehicles
	s.offers = snap.offers
	s.assignments = snap.assignments
	s.notifications = snap.notifications
}

// memTx runs with memStore.mu held.
type memTx struct {
	s *memStore
}

func (t *memTx) LockBooking(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := t.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (t *memTx) HasLiveOffers(_ context.Context, bookingID uuid.UUID, now time.Time) (bool, error) {
	for _, o := range t.s.offers {
		if o.BookingID == bookingID && o.Live(now) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertOffers(_ context.Context, offers []domain.Offer) error {
	for _, o := range offers {
		t.s.offers[o.ID] = o
	}
	return nil
}

func (t *memTx) InsertNotifications(_ context.Context, ns []domain.Notification) error {
	t.s.notifications = append(t.s.notifications, ns...)
	return nil
}

func (t *memTx) ConfirmOffer(_ context.Context, id uuid.UUID, now time.Time, price *float64, notes *string) (bool, error) {
	o, ok := t.s.offers[id]
	if !ok || o.Status != domain.OfferPending || !now.Before(o.ExpiresAt) {
		return false, nil
	}
	for _, other := range t.s.offers {
		if other.BookingID == o.BookingID && other.Status == domain.OfferConfirmed {
			return false, apperr.ErrAlreadyResolved
		}
	}
	o.Status = domain.OfferConfirmed
	o.ConfirmedAt = &now
	o.RespondedAt = &now
	if price != nil {
		o.PriceOffer = price
	}
	if notes != nil {
		o.Notes = notes
	}
	t.s.offers[id] = o
	return true, nil
}

func (t *memTx) InsertAssignment(_ context.Context, a *domain.Assignment) error {
	for _, existing := range t.s.assignments {
		if existing.BookingID == a.BookingID {
			return apperr.ErrAlreadyResolved
		}
	}
	t.s.assignments[a.ID] = *a
	return nil
}

func (t *memTx) UpdateBookingStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus) error {
	b := t.s.bookings[id]
	b.Status = status
	t.s.bookings[id] = b
	return nil
}

func (t *memTx) MarkVehicleBusy(_ context.Context, id uuid.UUID) error {
	v := t.s.vehicles[id]
	v.Status = domain.VehicleBusy
	v.TripCount++
	t.s.vehicles[id] = v
	return nil
}

func (t *memTx) RejectSiblings(_ context.Context, bookingID, winnerID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for id, o := range t.s.offers {
		if o.BookingID == bookingID && id != winnerID && o.Status == domain.OfferPending {
			o.Status = domain.OfferRejected
			o.RespondedAt = &now
			t.s.offers[id] = o
			n++
		}
	}
	return n, nil
}
