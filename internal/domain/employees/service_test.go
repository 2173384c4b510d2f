package employees_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/domain/employees"
	"pet-spa-booking/internal/platform/patch"
)

// plainHasher: solo para tests.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "plain:" + pw, nil }

func (plainHasher) Verify(hash, pw string) (bool, error) { return hash == "plain:"+pw, nil }

var rootAdmin = access.Principal{ID: "root", Role: access.RoleAdmin, OwnedResourceID: "root"}

func asPrincipal(e employees.Employee) access.Principal {
	p, err := access.ResolvePrincipal(employees.ClaimsFor(e))
	if err != nil {
		panic(err)
	}
	return p
}

func seed(t *testing.T) (*employees.Service, employees.Employee, employees.Employee) {
	t.Helper()
	svc := employees.NewService(memory.NewEmployeeRepo(), plainHasher{})
	ctx := context.Background()

	e5, err := svc.Create(ctx, rootAdmin, employees.CreateInput{
		FirstName: "Ana", Email: "Ana@Spa.test ", Phone: "555005", Password: "password5",
	})
	require.NoError(t, err)
	e9, err := svc.Create(ctx, rootAdmin, employees.CreateInput{
		FirstName: "Beto", Email: "beto@spa.test", Phone: "555009", Password: "password9",
	})
	require.NoError(t, err)
	return svc, e5, e9
}

func TestCreate_AdminOnlyAndUnique(t *testing.T) {
	svc, e5, _ := seed(t)
	ctx := context.Background()

	assert.Equal(t, "ana@spa.test", e5.Email)
	assert.NotEqual(t, "password5", e5.PasswordHash)

	_, err := svc.Create(ctx, asPrincipal(e5), employees.CreateInput{
		FirstName: "X", Email: "x@spa.test", Phone: "555111", Password: "password",
	})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = svc.Create(ctx, rootAdmin, employees.CreateInput{
		FirstName: "Dup", Email: "ana@spa.test", Phone: "555222", Password: "password",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestUpdate_AdminFlagIsAdminOnly(t *testing.T) {
	svc, e5, e9 := seed(t)
	ctx := context.Background()
	p5 := asPrincipal(e5)

	_, err := svc.Update(ctx, p5, e9.ID, employees.UpdateInput{IsAdmin: patch.Some(true)})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	// ni sobre sí mismo, ni "cambiándolo" al mismo valor
	_, err = svc.Update(ctx, p5, e5.ID, employees.UpdateInput{IsAdmin: patch.Some(false)})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	got, err := svc.Update(ctx, rootAdmin, e9.ID, employees.UpdateInput{IsAdmin: patch.Some(true)})
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
}

func TestUpdate_SelfOrAdmin(t *testing.T) {
	svc, e5, e9 := seed(t)
	ctx := context.Background()
	p5 := asPrincipal(e5)

	got, err := svc.Update(ctx, p5, e5.ID, employees.UpdateInput{LastName: patch.Some("Pérez")})
	require.NoError(t, err)
	assert.Equal(t, "Pérez", got.LastName)

	_, err = svc.Update(ctx, p5, e9.ID, employees.UpdateInput{LastName: patch.Some("Hack")})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = svc.Update(ctx, p5, e5.ID, employees.UpdateInput{Email: patch.Null[string]()})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.Update(ctx, p5, e5.ID, employees.UpdateInput{Phone: patch.Some(e9.Phone)})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestReads(t *testing.T) {
	svc, e5, e9 := seed(t)
	ctx := context.Background()
	p5 := asPrincipal(e5)
	client := access.Principal{ID: "U1", Role: access.RoleClient, OwnedResourceID: "C1"}

	_, err := svc.Get(ctx, p5, e5.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, p5, e9.ID)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	list, err := svc.List(ctx, p5)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	_, err = svc.List(ctx, client)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	found, err := svc.FindByPhone(ctx, p5, "555009")
	require.NoError(t, err)
	assert.Equal(t, e9.ID, found.ID)
	_, err = svc.FindByPhone(ctx, client, "555009")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	// el cliente no distingue teléfonos existentes de inexistentes
	_, err = svc.FindByPhone(ctx, client, "000000")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	_, err = svc.FindByPhone(ctx, p5, "000000")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDelete_AdminOnly(t *testing.T) {
	svc, e5, e9 := seed(t)
	ctx := context.Background()

	assert.True(t, errors.Is(svc.Delete(ctx, asPrincipal(e5), e9.ID), apperr.ErrUnauthorized))
	require.NoError(t, svc.Delete(ctx, rootAdmin, e9.ID))

	_, err := svc.Get(ctx, rootAdmin, e9.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAuthenticate(t *testing.T) {
	svc, e5, _ := seed(t)
	ctx := context.Background()

	got, err := svc.Authenticate(ctx, "ANA@spa.test", "password5")
	require.NoError(t, err)
	assert.Equal(t, e5.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ana@spa.test", "wrong")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = svc.Authenticate(ctx, "nobody@spa.test", "password5")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	svc := employees.NewService(memory.NewEmployeeRepo(), plainHasher{})
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureBootstrapAdmin(ctx, "boss@spa.test", "changeme123")
	require.NoError(t, err)
	assert.True(t, created)

	e, err := svc.Authenticate(ctx, "boss@spa.test", "changeme123")
	require.NoError(t, err)
	assert.True(t, e.IsAdmin)

	created, err = svc.EnsureBootstrapAdmin(ctx, "other@spa.test", "changeme123")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestClaimsFor(t *testing.T) {
	c := employees.ClaimsFor(employees.Employee{ID: "E1", Email: "a@b.c", IsAdmin: true})
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, "E1", c.Subject)
	assert.Equal(t, "E1", c.OwnedResourceID)

	c = employees.ClaimsFor(employees.Employee{ID: "E2"})
	assert.Equal(t, "employee", c.Role)
}
