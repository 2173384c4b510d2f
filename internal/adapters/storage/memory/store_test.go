package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/bookings"
	"pet-spa-booking/internal/domain/catalog"
	"pet-spa-booking/internal/domain/clients"
	"pet-spa-booking/internal/domain/employees"
	"pet-spa-booking/internal/domain/pets"
	"pet-spa-booking/internal/domain/rosters"
	"pet-spa-booking/internal/domain/schedule"
)

var day = schedule.Date{Year: 2026, Month: 3, Day: 12}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()

	require.NoError(t, st.Clients.Create(ctx, clients.Client{ID: "C1", FirstName: "Ana", Phone: "111"}))
	require.NoError(t, st.Clients.Create(ctx, clients.Client{ID: "C2", FirstName: "Beto", Phone: "222"}))
	require.NoError(t, st.Pets.Create(ctx, pets.Pet{ID: "P1", ClientID: "C1", Name: "Toby"}))
	require.NoError(t, st.Pets.Create(ctx, pets.Pet{ID: "P2", ClientID: "C2", Name: "Luna"}))
	require.NoError(t, st.Employees.Create(ctx, employees.Employee{ID: "E1", FirstName: "Eva", Email: "eva@spa.test", Phone: "901"}))
	require.NoError(t, st.Services.Create(ctx, catalog.Service{ID: "S1", Name: "Baño", DurationHours: 1, PriceCents: 2000}))
	require.NoError(t, st.Services.Create(ctx, catalog.Service{ID: "S2", Name: "Corte", DurationHours: 1, PriceCents: 3000}))

	e1 := "E1"
	for _, b := range []bookings.Booking{
		{ID: "B1", PetID: "P1", ServiceID: "S1", EmployeeID: &e1, Date: day, Time: schedule.Clock(10, 0), Status: bookings.StatusPending},
		{ID: "B2", PetID: "P1", ServiceID: "S1", Date: day, Time: schedule.Clock(11, 0), Status: bookings.StatusPending},
		{ID: "B3", PetID: "P2", ServiceID: "S1", EmployeeID: &e1, Date: day, Time: schedule.Clock(10, 0), Status: bookings.StatusPending},
	} {
		require.NoError(t, st.Bookings.Create(ctx, b))
	}
	require.NoError(t, st.Rosters.Create(ctx, rosters.Roster{ID: "R1", EmployeeID: "E1", Date: day}))
	return st
}

func TestStore_DeleteClientCascadesPetsAndBookings(t *testing.T) {
	st := seed(t)
	ctx := context.Background()

	require.NoError(t, st.Clients.Delete(ctx, "C1"))

	_, err := st.Pets.GetByID(ctx, "P1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	for _, id := range []string{"B1", "B2"} {
		_, err = st.Bookings.GetByID(ctx, id)
		assert.True(t, errors.Is(err, apperr.ErrNotFound), id)
	}

	// lo del otro cliente queda intacto
	_, err = st.Pets.GetByID(ctx, "P2")
	require.NoError(t, err)
	_, err = st.Bookings.GetByID(ctx, "B3")
	require.NoError(t, err)
}

func TestStore_DeletePetCascadesBookings(t *testing.T) {
	st := seed(t)
	ctx := context.Background()

	require.NoError(t, st.Pets.Delete(ctx, "P2"))

	_, err := st.Bookings.GetByID(ctx, "B3")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	all, err := st.Bookings.List(ctx, bookings.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_DeleteEmployeeDropsRostersAndUnassignsBookings(t *testing.T) {
	st := seed(t)
	ctx := context.Background()

	require.NoError(t, st.Employees.Delete(ctx, "E1"))

	_, err := st.Rosters.GetByID(ctx, "R1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	b, err := st.Bookings.GetByID(ctx, "B1")
	require.NoError(t, err)
	assert.Nil(t, b.EmployeeID)
}

func TestStore_DeleteServiceInUseIsConflict(t *testing.T) {
	st := seed(t)
	ctx := context.Background()

	assert.True(t, errors.Is(st.Services.Delete(ctx, "S1"), apperr.ErrConflict))
	_, err := st.Services.GetByID(ctx, "S1")
	require.NoError(t, err)

	require.NoError(t, st.Services.Delete(ctx, "S2"))
}
