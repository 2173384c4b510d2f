package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/apperr"
)

type slotKey struct {
	owner string
	date  Date
	at    TimeOfDay
}

type fakeFinder struct {
	taken map[slotKey]string
	err   error
}

func (f fakeFinder) BookingAt(_ context.Context, petID string, d Date, at TimeOfDay) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if id, ok := f.taken[slotKey{petID, d, at}]; ok {
		return id, nil
	}
	return "", apperr.ErrNotFound
}

func (f fakeFinder) RosterOn(_ context.Context, employeeID string, d Date) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if id, ok := f.taken[slotKey{employeeID, d, 0}]; ok {
		return id, nil
	}
	return "", apperr.ErrNotFound
}

func TestBookingConflict(t *testing.T) {
	ctx := context.Background()
	d := Date{Year: 2026, Month: 4, Day: 1}
	f := fakeFinder{taken: map[slotKey]string{{"P7", d, Clock(11, 0)}: "B1"}}

	hit, err := BookingConflict(ctx, f, "P7", d, Clock(11, 0), "")
	require.NoError(t, err)
	assert.True(t, hit)

	// la propia reserva no choca consigo misma
	hit, err = BookingConflict(ctx, f, "P7", d, Clock(11, 0), "B1")
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = BookingConflict(ctx, f, "P7", d, Clock(11, 30), "")
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = BookingConflict(ctx, f, "P8", d, Clock(11, 0), "")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRosterConflict(t *testing.T) {
	ctx := context.Background()
	d := Date{Year: 2026, Month: 4, Day: 1}
	f := fakeFinder{taken: map[slotKey]string{{"E5", d, 0}: "R1"}}

	hit, err := RosterConflict(ctx, f, "E5", d, "")
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = RosterConflict(ctx, f, "E5", d, "R1")
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = RosterConflict(ctx, f, "E5", d.AddDays(1), "")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestConflict_PropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := BookingConflict(context.Background(), fakeFinder{err: boom}, "P7", Date{}, 0, "")
	assert.ErrorIs(t, err, boom)
}
