package clients_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/domain/clients"
	"pet-spa-booking/internal/platform/patch"
)

var staff = access.Principal{ID: "E5", Role: access.RoleEmployee, OwnedResourceID: "E5"}

func clientPrincipal(id string) access.Principal {
	return access.Principal{ID: "U-" + id, Role: access.RoleClient, OwnedResourceID: id}
}

func TestCreate_StaffOnlyAndPhoneUnique(t *testing.T) {
	svc := clients.NewService(memory.NewClientRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, staff, clients.CreateInput{FirstName: " Lucía ", Phone: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "Lucía", c.FirstName)

	_, err = svc.Create(ctx, clientPrincipal(c.ID), clients.CreateInput{FirstName: "Otro", Phone: "654321"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = svc.Create(ctx, staff, clients.CreateInput{FirstName: "Dup", Phone: "123456"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestSelfAccess(t *testing.T) {
	svc := clients.NewService(memory.NewClientRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, staff, clients.CreateInput{FirstName: "Ana", Phone: "111111"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, staff, clients.CreateInput{FirstName: "Beto", Phone: "222222"})
	require.NoError(t, err)

	self := clientPrincipal(a.ID)

	_, err = svc.Get(ctx, self, a.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, self, b.ID)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	found, err := svc.FindByPhone(ctx, self, "111111")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
	_, err = svc.FindByPhone(ctx, self, "222222")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	// un teléfono inexistente responde igual que uno ajeno
	_, err = svc.FindByPhone(ctx, self, "999999")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = svc.List(ctx, self)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	got, err := svc.Update(ctx, self, a.ID, clients.UpdateInput{LastName: patch.Some("Gómez")})
	require.NoError(t, err)
	assert.Equal(t, "Gómez", got.LastName)

	_, err = svc.Update(ctx, self, a.ID, clients.UpdateInput{Phone: patch.Null[string]()})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	require.NoError(t, svc.Delete(ctx, self, a.ID))
	assert.True(t, errors.Is(svc.Exists(ctx, a.ID), apperr.ErrNotFound))
}
