package rosters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/domain/rosters"
	"pet-spa-booking/internal/domain/schedule"
	"pet-spa-booking/internal/platform/patch"
)

type knownEmployees map[string]bool

func (k knownEmployees) Exists(_ context.Context, id string) error {
	if !k[id] {
		return apperr.NotFound("employee not found")
	}
	return nil
}

var (
	employee = access.Principal{ID: "E5", Role: access.RoleEmployee, OwnedResourceID: "E5"}
	client   = access.Principal{ID: "U1", Role: access.RoleClient, OwnedResourceID: "C1"}
)

func newService(t *testing.T) (*rosters.Service, schedule.Date) {
	t.Helper()
	// 21:00: fuera de horario, los rosters no lo miran
	now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	svc := rosters.NewService(
		memory.NewRosterRepo(),
		knownEmployees{"E5": true, "E9": true},
		schedule.NewValidator(func() time.Time { return now }, time.UTC),
	)
	return svc, schedule.DateOf(now)
}

func TestCreate_TodayAllowedRegardlessOfHour(t *testing.T) {
	svc, today := newService(t)

	r, err := svc.Create(context.Background(), employee, rosters.CreateInput{EmployeeID: "E9", Date: today})
	require.NoError(t, err)
	assert.Equal(t, "E9", r.EmployeeID)
	assert.Equal(t, today, r.Date)
}

func TestCreate_Rules(t *testing.T) {
	svc, today := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, employee, rosters.CreateInput{EmployeeID: "E9", Date: today.AddDays(-1)})
	reason, ok := apperr.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.ReasonPastDate, reason)

	_, err = svc.Create(ctx, employee, rosters.CreateInput{EmployeeID: "E404", Date: today})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.Create(ctx, client, rosters.CreateInput{EmployeeID: "E9", Date: today})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestCreate_SameEmployeeSameDayIsConflict(t *testing.T) {
	svc, today := newService(t)
	ctx := context.Background()
	in := rosters.CreateInput{EmployeeID: "E9", Date: today.AddDays(2)}

	_, err := svc.Create(ctx, employee, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, employee, in)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	in.EmployeeID = "E5"
	_, err = svc.Create(ctx, employee, in)
	require.NoError(t, err)
}

func TestUpdate_Conflicts(t *testing.T) {
	svc, today := newService(t)
	ctx := context.Background()
	day := today.AddDays(1)

	_, err := svc.Create(ctx, employee, rosters.CreateInput{EmployeeID: "E9", Date: day})
	require.NoError(t, err)
	r, err := svc.Create(ctx, employee, rosters.CreateInput{EmployeeID: "E9", Date: day.AddDays(1)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, employee, r.ID, rosters.UpdateInput{Date: patch.Some(day)})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// la misma fecha que ya tiene no choca consigo misma
	_, err = svc.Update(ctx, employee, r.ID, rosters.UpdateInput{Date: patch.Some(day.AddDays(1))})
	require.NoError(t, err)

	moved, err := svc.Update(ctx, employee, r.ID, rosters.UpdateInput{EmployeeID: patch.Some("E5"), Date: patch.Some(day)})
	require.NoError(t, err)
	assert.Equal(t, "E5", moved.EmployeeID)
}

func TestListOrderedAndByDate(t *testing.T) {
	svc, today := newService(t)
	ctx := context.Background()

	for _, in := range []rosters.CreateInput{
		{EmployeeID: "E9", Date: today.AddDays(3)},
		{EmployeeID: "E9", Date: today.AddDays(1)},
		{EmployeeID: "E5", Date: today.AddDays(1)},
	} {
		_, err := svc.Create(ctx, employee, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, employee)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, today.AddDays(1), all[0].Date)
	assert.Equal(t, today.AddDays(3), all[2].Date)

	day, err := svc.ListByDate(ctx, employee, today.AddDays(1))
	require.NoError(t, err)
	assert.Len(t, day, 2)

	_, err = svc.List(ctx, client)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestDelete(t *testing.T) {
	svc, today := newService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, employee, rosters.CreateInput{EmployeeID: "E9", Date: today})
	require.NoError(t, err)

	assert.True(t, errors.Is(svc.Delete(ctx, client, r.ID), apperr.ErrUnauthorized))
	require.NoError(t, svc.Delete(ctx, employee, r.ID))

	_, err = svc.Get(ctx, employee, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
