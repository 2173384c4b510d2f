package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/platform/patch"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	FirstName string
	LastName  string
	Phone     string
}

type UpdateInput struct {
	FirstName patch.Field[string]
	LastName  patch.Field[string]
	Phone     patch.Field[string]
}

func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (Client, error) {
	if err := access.Authorize(p, access.Request{Resource: access.ResourceClient, Action: access.ActionCreate}); err != nil {
		return Client{}, err
	}

	first := strings.TrimSpace(in.FirstName)
	phone := strings.TrimSpace(in.Phone)
	if first == "" || phone == "" {
		return Client{}, apperr.Validation("first_name and phone are required")
	}

	now := s.now()
	c := Client{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, p access.Principal, id string) (Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}
	if err := access.Authorize(p, readOne(access.ResourceClient, c.ID)); err != nil {
		return Client{}, err
	}
	return c, nil
}

// FindByPhone: staff o el propio cliente.
func (s *Service) FindByPhone(ctx context.Context, p access.Principal, phone string) (Client, error) {
	c, err := s.repo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		// para un cliente, teléfono ajeno e inexistente responden igual
		if p.Role == access.RoleClient && errors.Is(err, apperr.ErrNotFound) {
			return Client{}, apperr.Unauthorized("unauthorized")
		}
		return Client{}, err
	}
	if err := access.Authorize(p, readOne(access.ResourceUser, c.ID)); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, p access.Principal) ([]Client, error) {
	if err := access.Authorize(p, access.Request{Resource: access.ResourceClient, Action: access.ActionReadMany}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, p access.Principal, id string, in UpdateInput) (Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}
	req := access.Request{
		Resource: access.ResourceClient,
		Action:   access.ActionUpdate,
		Facts:    access.Facts{OwnerClientID: c.ID},
	}
	if err := access.Authorize(p, req); err != nil {
		return Client{}, err
	}

	if in.FirstName.Nulled() || in.Phone.Nulled() {
		return Client{}, apperr.Validation("first_name and phone cannot be null")
	}
	in.FirstName.Apply(&c.FirstName)
	in.LastName.Apply(&c.LastName)
	in.Phone.Apply(&c.Phone)

	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.FirstName == "" || c.Phone == "" {
		return Client{}, apperr.Validation("first_name and phone are required")
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	req := access.Request{
		Resource: access.ResourceClient,
		Action:   access.ActionDelete,
		Facts:    access.Facts{OwnerClientID: c.ID},
	}
	if err := access.Authorize(p, req); err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}

// Exists se usa desde pets sin pasar por la política.
func (s *Service) Exists(ctx context.Context, id string) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func readOne(r access.Resource, clientID string) access.Request {
	return access.Request{
		Resource: r,
		Action:   access.ActionReadOne,
		Facts:    access.Facts{OwnerClientID: clientID},
	}
}
