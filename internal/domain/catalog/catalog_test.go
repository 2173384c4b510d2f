package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/domain/catalog"
	"pet-spa-booking/internal/platform/patch"
)

var (
	admin  = access.Principal{ID: "E1", Role: access.RoleAdmin, OwnedResourceID: "E1"}
	staff  = access.Principal{ID: "E5", Role: access.RoleEmployee, OwnedResourceID: "E5"}
	client = access.Principal{ID: "U1", Role: access.RoleClient, OwnedResourceID: "C1"}
)

func TestCatalog(t *testing.T) {
	c := catalog.NewCatalog(memory.NewServiceRepo())
	ctx := context.Background()

	s, err := c.Create(ctx, admin, catalog.CreateInput{Name: "full   GROOM", DurationHours: 1.5, PriceCents: 4500})
	require.NoError(t, err)
	assert.Equal(t, "Full Groom", s.Name)

	_, err = c.Create(ctx, staff, catalog.CreateInput{Name: "bath", DurationHours: 1})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = c.Create(ctx, admin, catalog.CreateInput{Name: "bath", DurationHours: 0})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	list, err := c.List(ctx, client)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = c.List(ctx, access.Principal{})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	got, err := c.Update(ctx, admin, s.ID, catalog.UpdateInput{Name: patch.Some("nail trim"), PriceCents: patch.Some(int64(0))})
	require.NoError(t, err)
	assert.Equal(t, "Nail Trim", got.Name)
	assert.Equal(t, int64(0), got.PriceCents)
	assert.Equal(t, 1.5, got.DurationHours)

	_, err = c.Update(ctx, client, s.ID, catalog.UpdateInput{PriceCents: patch.Some(int64(1))})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	require.NoError(t, c.Delete(ctx, admin, s.ID))
	assert.True(t, errors.Is(c.Exists(ctx, s.ID), apperr.ErrNotFound))
}
