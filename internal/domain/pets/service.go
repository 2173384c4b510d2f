package pets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/platform/patch"
)

// ClientLookup evita importar el paquete clients.
type ClientLookup interface {
	Exists(ctx context.Context, clientID string) error
}

type Service struct {
	repo    Repository
	clients ClientLookup
	now     func() time.Time
}

func NewService(repo Repository, clients ClientLookup) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		now:     time.Now,
	}
}

type CreateInput struct {
	ClientID string
	TypeID   string
	SizeID   string
	Name     string
	Breed    string
	Year     *int
}

type UpdateInput struct {
	ClientID patch.Field[string]
	TypeID   patch.Field[string]
	SizeID   patch.Field[string]
	Name     patch.Field[string]
	Breed    patch.Field[string]
	Year     patch.Field[int] // null limpia
}

func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (Pet, error) {
	clientID := strings.TrimSpace(in.ClientID)
	req := access.Request{
		Resource: access.ResourcePet,
		Action:   access.ActionCreate,
		Facts:    access.Facts{OwnerClientID: clientID},
	}
	if err := access.Authorize(p, req); err != nil {
		return Pet{}, err
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.TypeID) == "" || strings.TrimSpace(in.SizeID) == "" {
		return Pet{}, apperr.Validation("name, type_id and size_id are required")
	}
	if err := s.clients.Exists(ctx, clientID); err != nil {
		return Pet{}, err
	}

	now := s.now()
	pet := Pet{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		TypeID:    strings.TrimSpace(in.TypeID),
		SizeID:    strings.TrimSpace(in.SizeID),
		Name:      strings.TrimSpace(in.Name),
		Breed:     strings.TrimSpace(in.Breed),
		Year:      in.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

func (s *Service) Get(ctx context.Context, p access.Principal, id string) (Pet, error) {
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if err := access.Authorize(p, s.request(access.ActionReadOne, pet)); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

func (s *Service) List(ctx context.Context, p access.Principal) ([]Pet, error) {
	if err := access.Authorize(p, access.Request{Resource: access.ResourcePet, Action: access.ActionReadMany}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// ListByClient: staff o el propio cliente.
func (s *Service) ListByClient(ctx context.Context, p access.Principal, clientID string) ([]Pet, error) {
	if err := s.clients.Exists(ctx, clientID); err != nil {
		return nil, err
	}
	req := access.Request{
		Resource: access.ResourceClient,
		Action:   access.ActionReadOne,
		Facts:    access.Facts{OwnerClientID: clientID},
	}
	if err := access.Authorize(p, req); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, clientID)
}

// Update aplica PATCH. Mover la mascota a otro cliente es solo para staff.
func (s *Service) Update(ctx context.Context, p access.Principal, id string, in UpdateInput) (Pet, error) {
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	req := s.request(access.ActionUpdate, pet)
	req.Facts.ReassignsOwner = in.ClientID.Set && strings.TrimSpace(in.ClientID.Value) != pet.ClientID
	if err := access.Authorize(p, req); err != nil {
		return Pet{}, err
	}

	if in.ClientID.Nulled() || in.TypeID.Nulled() || in.SizeID.Nulled() || in.Name.Nulled() {
		return Pet{}, apperr.Validation("client_id, type_id, size_id and name cannot be null")
	}

	if req.Facts.ReassignsOwner {
		newOwner := strings.TrimSpace(in.ClientID.Value)
		if err := s.clients.Exists(ctx, newOwner); err != nil {
			return Pet{}, err
		}
		pet.ClientID = newOwner
	}
	in.TypeID.Apply(&pet.TypeID)
	in.SizeID.Apply(&pet.SizeID)
	in.Name.Apply(&pet.Name)
	in.Breed.Apply(&pet.Breed)
	in.Year.ApplyPtr(&pet.Year)

	pet.TypeID = strings.TrimSpace(pet.TypeID)
	pet.SizeID = strings.TrimSpace(pet.SizeID)
	pet.Name = strings.TrimSpace(pet.Name)
	pet.Breed = strings.TrimSpace(pet.Breed)
	if pet.Name == "" || pet.TypeID == "" || pet.SizeID == "" {
		return Pet{}, apperr.Validation("name, type_id and size_id are required")
	}

	pet.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id string) error {
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(p, s.request(access.ActionDelete, pet)); err != nil {
		return err
	}
	return s.repo.Delete(ctx, pet.ID)
}

func (s *Service) request(a access.Action, pet Pet) access.Request {
	return access.Request{
		Resource: access.ResourcePet,
		Action:   a,
		Facts:    access.Facts{OwnerClientID: pet.ClientID},
	}
}
