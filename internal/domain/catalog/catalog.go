package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/platform/patch"
)

// Catalog administra los servicios. Lectura para cualquier principal,
// escritura solo admin.
type Catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

type CreateInput struct {
	Name          string
	DurationHours float64
	PriceCents    int64
}

type UpdateInput struct {
	Name          patch.Field[string]
	DurationHours patch.Field[float64]
	PriceCents    patch.Field[int64]
}

func (c *Catalog) Create(ctx context.Context, p access.Principal, in CreateInput) (Service, error) {
	if err := access.Authorize(p, request(access.ActionCreate)); err != nil {
		return Service{}, err
	}

	s := Service{
		ID:            uuid.NewString(),
		Name:          normalizeName(in.Name),
		DurationHours: in.DurationHours,
		PriceCents:    in.PriceCents,
	}
	if err := check(s); err != nil {
		return Service{}, err
	}
	if err := c.repo.Create(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (c *Catalog) Get(ctx context.Context, p access.Principal, id string) (Service, error) {
	if err := access.Authorize(p, request(access.ActionReadOne)); err != nil {
		return Service{}, err
	}
	return c.repo.GetByID(ctx, id)
}

func (c *Catalog) List(ctx context.Context, p access.Principal) ([]Service, error) {
	if err := access.Authorize(p, request(access.ActionReadMany)); err != nil {
		return nil, err
	}
	return c.repo.List(ctx)
}

func (c *Catalog) Update(ctx context.Context, p access.Principal, id string, in UpdateInput) (Service, error) {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return Service{}, err
	}
	if err := access.Authorize(p, request(access.ActionUpdate)); err != nil {
		return Service{}, err
	}
	if in.Name.Nulled() || in.DurationHours.Nulled() || in.PriceCents.Nulled() {
		return Service{}, apperr.Validation("name, duration_hours and price_cents cannot be null")
	}

	if in.Name.Apply(&s.Name) {
		s.Name = normalizeName(s.Name)
	}
	in.DurationHours.Apply(&s.DurationHours)
	in.PriceCents.Apply(&s.PriceCents)

	if err := check(s); err != nil {
		return Service{}, err
	}
	if err := c.repo.Update(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (c *Catalog) Delete(ctx context.Context, p access.Principal, id string) error {
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(p, request(access.ActionDelete)); err != nil {
		return err
	}
	return c.repo.Delete(ctx, s.ID)
}

// Exists se usa desde bookings sin pasar por la política.
func (c *Catalog) Exists(ctx context.Context, id string) error {
	_, err := c.repo.GetByID(ctx, id)
	return err
}

// normalizeName: "full  GROOM" -> "Full Groom". Un Caser no se comparte entre goroutines.
func normalizeName(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}

func check(s Service) error {
	switch {
	case s.Name == "":
		return apperr.Validation("name is required")
	case s.DurationHours <= 0:
		return apperr.Validation("duration_hours must be greater than 0")
	case s.PriceCents < 0:
		return apperr.Validation("price_cents must not be negative")
	}
	return nil
}

func request(a access.Action) access.Request {
	return access.Request{Resource: access.ResourceService, Action: a}
}
