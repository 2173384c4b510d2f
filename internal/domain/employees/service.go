package employees

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

// PasswordHasher guarda credenciales como hash (argon2id en producción).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
	}
}

type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	IsAdmin   bool
	Password  string
}

type UpdateInput struct {
	FirstName patch.Field[string]
	LastName  patch.Field[string]
	Email     patch.Field[string]
	Phone     patch.Field[string]
	IsAdmin   patch.Field[bool] // presente = cambio de rol, aunque repita el valor
	Password  patch.Field[string]
}

func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (Employee, error) {
	if err := access.Authorize(p, access.Request{Resource: access.ResourceEmployee, Action: access.ActionCreate}); err != nil {
		return Employee{}, err
	}
	return s.create(ctx, in)
}

func (s *Service) create(ctx context.Context, in CreateInput) (Employee, error) {
	first := strings.TrimSpace(in.FirstName)
	email := normalizeEmail(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if first == "" || email == "" || phone == "" || in.Password == "" {
		return Employee{}, apperr.Validation("first_name, email, phone and password are required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Employee{}, apperr.Validation("invalid password").WithCause(err)
	}

	now := s.now()
	e := Employee{
		ID:           uuid.NewString(),
		FirstName:    first,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        phone,
		IsAdmin:      in.IsAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, p access.Principal, id string) (Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if err := access.Authorize(p, request(access.ActionReadOne, e.ID)); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// FindByPhone: solo staff.
func (s *Service) FindByPhone(ctx context.Context, p access.Principal, phone string) (Employee, error) {
	// el rol se revisa antes de buscar: un cliente no sabe si el teléfono existe
	if err := access.Authorize(p, access.Request{Resource: access.ResourceUser, Action: access.ActionReadOne}); err != nil {
		return Employee{}, err
	}
	return s.repo.GetByPhone(ctx, strings.TrimSpace(phone))
}

func (s *Service) List(ctx context.Context, p access.Principal) ([]Employee, error) {
	if err := access.Authorize(p, access.Request{Resource: access.ResourceEmployee, Action: access.ActionReadMany}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Update aplica PATCH. Tocar is_admin es solo para admin, incluso sobre uno mismo.
func (s *Service) Update(ctx context.Context, p access.Principal, id string, in UpdateInput) (Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	req := request(access.ActionUpdate, e.ID)
	req.Facts.ChangesAdminFlag = in.IsAdmin.Set
	if err := access.Authorize(p, req); err != nil {
		return Employee{}, err
	}

	if in.FirstName.Nulled() || in.Email.Nulled() || in.Phone.Nulled() || in.IsAdmin.Nulled() || in.Password.Nulled() {
		return Employee{}, apperr.Validation("first_name, email, phone, is_admin and password cannot be null")
	}

	in.FirstName.Apply(&e.FirstName)
	in.LastName.Apply(&e.LastName)
	in.Email.Apply(&e.Email)
	in.Phone.Apply(&e.Phone)
	in.IsAdmin.Apply(&e.IsAdmin)

	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = normalizeEmail(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	if e.FirstName == "" || e.Email == "" || e.Phone == "" {
		return Employee{}, apperr.Validation("first_name, email and phone are required")
	}

	if in.Password.Set {
		hash, err := s.hasher.Hash(in.Password.Value)
		if err != nil {
			return Employee{}, apperr.Validation("invalid password").WithCause(err)
		}
		e.PasswordHash = hash
	}

	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(p, request(access.ActionDelete, e.ID)); err != nil {
		return err
	}
	return s.repo.Delete(ctx, e.ID)
}

// Exists se usa desde bookings y rosters sin pasar por la política.
func (s *Service) Exists(ctx context.Context, id string) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

// Authenticate valida email + password. Cualquier fallo es el mismo Unauthorized.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Employee, error) {
	invalid := apperr.Unauthorized("invalid credentials")

	e, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Employee{}, invalid
		}
		return Employee{}, err
	}

	ok, err := s.hasher.Verify(e.PasswordHash, password)
	if err != nil {
		return Employee{}, err
	}
	if !ok {
		return Employee{}, invalid
	}
	return e, nil
}

// EnsureBootstrapAdmin crea el primer admin si todavía no hay empleados.
// Devuelve true si lo creó.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.create(ctx, CreateInput{
		FirstName: "Admin",
		Email:     email,
		Phone:     "000000",
		IsAdmin:   true,
		Password:  password,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func request(a access.Action, employeeID string) access.Request {
	return access.Request{
		Resource: access.ResourceEmployee,
		Action:   a,
		Facts:    access.Facts{EmployeeID: employeeID},
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
