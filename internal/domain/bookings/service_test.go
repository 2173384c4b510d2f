package bookings_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/domain/bookings"
	"pet-spa-booking/internal/domain/schedule"
	"pet-spa-booking/internal/platform/patch"
)

type petOwners map[string]string

func (p petOwners) OwnerOf(_ context.Context, petID string) (string, error) {
	owner, ok := p[petID]
	if !ok {
		return "", apperr.NotFound("pet not found")
	}
	return owner, nil
}

type known map[string]bool

func (k known) Exists(_ context.Context, id string) error {
	if !k[id] {
		return apperr.NotFound("not found")
	}
	return nil
}

var (
	admin    = access.Principal{ID: "E1", Role: access.RoleAdmin, OwnedResourceID: "E1"}
	employee = access.Principal{ID: "E5", Role: access.RoleEmployee, OwnedResourceID: "E5"}
	owner    = access.Principal{ID: "U123", Role: access.RoleClient, OwnedResourceID: "C123"}
	stranger = access.Principal{ID: "U999", Role: access.RoleClient, OwnedResourceID: "C999"}
)

type fixture struct {
	svc   *bookings.Service
	clock *time.Time
	today schedule.Date
}

// 2026-03-10 12:30 hora local de la spa.
func newFixture(t *testing.T) fixture {
	t.Helper()

	loc := time.UTC
	clock := time.Date(2026, 3, 10, 12, 30, 0, 0, loc)
	f := fixture{clock: &clock, today: schedule.DateOf(clock)}

	f.svc = bookings.NewService(bookings.Deps{
		Repo:      memory.NewBookingRepo(),
		Pets:      petOwners{"P7": "C123", "P8": "C123", "P9": "C999"},
		Employees: known{"E5": true, "E9": true},
		Services:  known{"S1": true},
		Slots:     schedule.NewValidator(func() time.Time { return *f.clock }, loc),
	})
	return f
}

func (f fixture) input(petID string, d schedule.Date, at schedule.TimeOfDay) bookings.CreateInput {
	return bookings.CreateInput{PetID: petID, ServiceID: "S1", Date: d, Time: at}
}

func TestCreate_OwnerBooksOwnPetTomorrow(t *testing.T) {
	f := newFixture(t)
	tomorrow := f.today.AddDays(1)

	b, err := f.svc.Create(context.Background(), owner, f.input("P7", tomorrow, schedule.Clock(11, 0)))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, bookings.StatusPending, b.Status)
	assert.Equal(t, "P7", b.PetID)
	assert.Equal(t, tomorrow, b.Date)
	assert.Nil(t, b.EmployeeID)
}

func TestCreate_SameSlotTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0))

	_, err := f.svc.Create(ctx, owner, in)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, employee, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// otra mascota a la misma hora no choca
	in.PetID = "P8"
	_, err = f.svc.Create(ctx, owner, in)
	require.NoError(t, err)
}

func TestCreate_SlotRules(t *testing.T) {
	f := newFixture(t)
	tomorrow := f.today.AddDays(1)

	tests := []struct {
		name   string
		date   schedule.Date
		at     schedule.TimeOfDay
		reason apperr.SlotReason
	}{
		{"before opening", tomorrow, schedule.Clock(9, 0), apperr.ReasonOutsideBusinessHours},
		{"after closing", tomorrow, schedule.Clock(20, 1), apperr.ReasonOutsideBusinessHours},
		{"yesterday", f.today.AddDays(-1), schedule.Clock(11, 0), apperr.ReasonPastDate},
		{"earlier today", f.today, schedule.Clock(12, 0), apperr.ReasonPastTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), employee, f.input("P7", tt.date, tt.at))
			require.Error(t, err)
			reason, ok := apperr.ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}

	t.Run("closing time is bookable", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), employee, f.input("P7", tomorrow, schedule.Clock(20, 0)))
		require.NoError(t, err)
	})

	t.Run("later today is bookable", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), employee, f.input("P7", f.today, schedule.Clock(13, 0)))
		require.NoError(t, err)
	})
}

func TestCreate_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tomorrow := f.today.AddDays(1)

	_, err := f.svc.Create(ctx, stranger, f.input("P7", tomorrow, schedule.Clock(11, 0)))
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.svc.Create(ctx, access.Principal{}, f.input("P7", tomorrow, schedule.Clock(11, 0)))
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.svc.Create(ctx, owner, f.input("P404", tomorrow, schedule.Clock(11, 0)))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCreate_UnknownReferencesAreNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0))

	in.ServiceID = "S404"
	_, err := f.svc.Create(ctx, employee, in)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	in.ServiceID = "S1"
	ghost := "E404"
	in.EmployeeID = &ghost
	_, err = f.svc.Create(ctx, employee, in)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestStrangerCannotTouchBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, owner, f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0)))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, stranger, b.ID)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.svc.Update(ctx, stranger, b.ID, bookings.UpdateInput{Status: patch.Some(bookings.StatusCompleted)})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	err = f.svc.Delete(ctx, stranger, b.ID)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	got, err := f.svc.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusPending, got.Status)
}

func TestUpdate_ClientCannotReassignPet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, owner, f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0)))
	require.NoError(t, err)

	// P8 también es de C123, igual se rechaza
	_, err = f.svc.Update(ctx, owner, b.ID, bookings.UpdateInput{PetID: patch.Some("P8")})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	// mandar el mismo pet_id no es reasignar
	_, err = f.svc.Update(ctx, owner, b.ID, bookings.UpdateInput{PetID: patch.Some("P7")})
	require.NoError(t, err)

	moved, err := f.svc.Update(ctx, employee, b.ID, bookings.UpdateInput{PetID: patch.Some("P8")})
	require.NoError(t, err)
	assert.Equal(t, "P8", moved.PetID)
}

func TestUpdate_StatusIsFreeAndSkipsSlotCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, owner, f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0)))
	require.NoError(t, err)

	// la reserva ya quedó en el pasado
	*f.clock = f.clock.Add(72 * time.Hour)

	for _, st := range []bookings.Status{bookings.StatusCompleted, bookings.StatusPending, bookings.StatusInProgress} {
		got, err := f.svc.Update(ctx, owner, b.ID, bookings.UpdateInput{Status: patch.Some(st)})
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	// mover la fecha sí revalida
	_, err = f.svc.Update(ctx, owner, b.ID, bookings.UpdateInput{Date: patch.Some(f.today)})
	reason, ok := apperr.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.ReasonPastDate, reason)
}

func TestUpdate_MoveIntoTakenSlotIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tomorrow := f.today.AddDays(1)

	_, err := f.svc.Create(ctx, owner, f.input("P7", tomorrow, schedule.Clock(11, 0)))
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, owner, f.input("P7", tomorrow, schedule.Clock(15, 0)))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, owner, b.ID, bookings.UpdateInput{Time: patch.Some(schedule.Clock(11, 0))})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	got, err := f.svc.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.Clock(15, 0), got.Time)
}

func TestUpdate_EmployeeAssignAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, employee, f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0)))
	require.NoError(t, err)

	got, err := f.svc.Update(ctx, employee, b.ID, bookings.UpdateInput{EmployeeID: patch.Some("E9")})
	require.NoError(t, err)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, "E9", *got.EmployeeID)

	got, err = f.svc.Update(ctx, employee, b.ID, bookings.UpdateInput{EmployeeID: patch.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.EmployeeID)

	_, err = f.svc.Update(ctx, employee, b.ID, bookings.UpdateInput{ServiceID: patch.Null[string]()})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestList_StaffOnlyWithStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tomorrow := f.today.AddDays(1)

	b1, err := f.svc.Create(ctx, owner, f.input("P7", tomorrow, schedule.Clock(11, 0)))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, owner, f.input("P8", tomorrow, schedule.Clock(12, 0)))
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, employee, b1.ID, bookings.UpdateInput{Status: patch.Some(bookings.StatusCompleted)})
	require.NoError(t, err)

	_, err = f.svc.List(ctx, owner, bookings.Filter{})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	all, err := f.svc.List(ctx, employee, bookings.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	done, err := f.svc.List(ctx, admin, bookings.Filter{Status: bookings.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, b1.ID, done[0].ID)
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, owner, f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0)))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, owner, b.ID))

	_, err = f.svc.Get(ctx, owner, b.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// el slot quedó libre
	_, err = f.svc.Create(ctx, owner, f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0)))
	require.NoError(t, err)
}

func TestCreate_ConcurrentSameSlotOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	in := f.input("P7", f.today.AddDays(1), schedule.Clock(11, 0))

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), employee, in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestParseStatus(t *testing.T) {
	st, err := bookings.ParseStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusInProgress, st)

	_, err = bookings.ParseStatus("Cancelled")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
