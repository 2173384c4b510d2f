package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/bookings"
	"pet-spa-booking/internal/domain/schedule"
)

// bookingRepo: WithinTx toma el lock de escritura durante todo fn, así el
// chequeo de choque y la escritura son atómicos. Si fn falla se restaura el
// estado anterior.
type bookingRepo struct {
	mu   sync.RWMutex
	byID map[string]bookings.Booking
}

func NewBookingRepo() bookings.Repository {
	return &bookingRepo{
		byID: make(map[string]bookings.Booking),
	}
}

func (r *bookingRepo) WithinTx(ctx context.Context, fn func(tx bookings.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := maps.Clone(r.byID)
	if err := fn(bookingTx{byID: r.byID}); err != nil {
		r.byID = snapshot
		return err
	}
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return bookingTx{byID: r.byID}.GetByID(ctx, id)
}

func (r *bookingRepo) BookingAt(ctx context.Context, petID string, d schedule.Date, at schedule.TimeOfDay) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return bookingTx{byID: r.byID}.BookingAt(ctx, petID, d, at)
}

func (r *bookingRepo) Create(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bookingTx{byID: r.byID}.Create(ctx, b)
}

func (r *bookingRepo) Update(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bookingTx{byID: r.byID}.Update(ctx, b)
}

func (r *bookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bookingTx{byID: r.byID}.Delete(ctx, id)
}

// List ordena por fecha y hora.
func (r *bookingRepo) List(ctx context.Context, f bookings.Filter) ([]bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bookings.Booking, 0)
	for _, b := range r.byID {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

// bookingTx opera sin lock; el caller ya lo tiene.
type bookingTx struct {
	byID map[string]bookings.Booking
}

func (t bookingTx) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	b, ok := t.byID[id]
	if !ok {
		return bookings.Booking{}, apperr.NotFound("booking not found")
	}
	return b, nil
}

func (t bookingTx) BookingAt(ctx context.Context, petID string, d schedule.Date, at schedule.TimeOfDay) (string, error) {
	for _, b := range t.byID {
		if b.PetID == petID && b.Date == d && b.Time == at {
			return b.ID, nil
		}
	}
	return "", apperr.ErrNotFound
}

func (t bookingTx) Create(ctx context.Context, b bookings.Booking) error {
	if b.ID == "" {
		return apperr.Validation("booking id required")
	}
	if _, exists := t.byID[b.ID]; exists {
		return apperr.Conflict("booking already exists")
	}
	if t.slotTaken(b) {
		return apperr.Conflict("pet already has a booking at that date and time")
	}
	t.byID[b.ID] = b
	return nil
}

func (t bookingTx) Update(ctx context.Context, b bookings.Booking) error {
	if _, exists := t.byID[b.ID]; !exists {
		return apperr.NotFound("booking not found")
	}
	if t.slotTaken(b) {
		return apperr.Conflict("pet already has a booking at that date and time")
	}
	t.byID[b.ID] = b
	return nil
}

func (t bookingTx) Delete(ctx context.Context, id string) error {
	if _, exists := t.byID[id]; !exists {
		return apperr.NotFound("booking not found")
	}
	delete(t.byID, id)
	return nil
}

// slotTaken replica UNIQUE(pet_id, date, time).
func (t bookingTx) slotTaken(b bookings.Booking) bool {
	for _, o := range t.byID {
		if o.ID != b.ID && o.PetID == b.PetID && o.Date == b.Date && o.Time == b.Time {
			return true
		}
	}
	return false
}
