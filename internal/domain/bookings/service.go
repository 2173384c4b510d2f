package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/domain/schedule"
	"pet-spa-booking/internal/platform/patch"
)

// PetOwnerLookup resuelve booking -> pet -> client sin importar pets.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// ExistenceChecker devuelve apperr.ErrNotFound si el id no existe.
type ExistenceChecker interface {
	Exists(ctx context.Context, id string) error
}

type Deps struct {
	Repo      Repository
	Pets      PetOwnerLookup
	Employees ExistenceChecker
	Services  ExistenceChecker
	Slots     *schedule.Validator
}

type Service struct {
	repo      Repository
	pets      PetOwnerLookup
	employees ExistenceChecker
	services  ExistenceChecker
	slots     *schedule.Validator
	now       func() time.Time
}

func NewService(d Deps) *Service {
	return &Service{
		repo:      d.Repo,
		pets:      d.Pets,
		employees: d.Employees,
		services:  d.Services,
		slots:     d.Slots,
		now:       time.Now,
	}
}

type CreateInput struct {
	PetID      string
	EmployeeID *string
	ServiceID  string
	Date       schedule.Date
	Time       schedule.TimeOfDay
	Status     Status // vacío = Pending
}

type UpdateInput struct {
	PetID      patch.Field[string]
	EmployeeID patch.Field[string] // null desasigna
	ServiceID  patch.Field[string]
	Date       patch.Field[schedule.Date]
	Time       patch.Field[schedule.TimeOfDay]
	Status     patch.Field[Status]
}

// Create: autoriza, valida el slot y dentro de la transacción chequea el
// choque antes de insertar.
func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (Booking, error) {
	petID := strings.TrimSpace(in.PetID)
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return Booking{}, err
	}
	if err := access.Authorize(p, request(access.ActionCreate, owner)); err != nil {
		return Booking{}, err
	}

	if in.Date.IsZero() {
		return Booking{}, apperr.Validation("date is required")
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return Booking{}, apperr.Validation("invalid status")
	}

	b := Booking{
		ID:        uuid.NewString(),
		PetID:     petID,
		ServiceID: strings.TrimSpace(in.ServiceID),
		Date:      in.Date,
		Time:      in.Time,
		Status:    status,
	}
	if in.EmployeeID != nil {
		id := strings.TrimSpace(*in.EmployeeID)
		b.EmployeeID = &id
	}
	if err := s.checkRefs(ctx, b); err != nil {
		return Booking{}, err
	}

	if err := s.slots.Validate(b.Date, b.Time, schedule.KindBooking); err != nil {
		return Booking{}, err
	}

	now := s.now()
	b.CreatedAt = now
	b.UpdatedAt = now

	err = s.repo.WithinTx(ctx, func(tx Store) error {
		if err := checkConflict(ctx, tx, b); err != nil {
			return err
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, p access.Principal, id string) (Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	owner, err := s.pets.OwnerOf(ctx, b.PetID)
	if err != nil {
		return Booking{}, err
	}
	if err := access.Authorize(p, request(access.ActionReadOne, owner)); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// List: solo staff. f.Status vacío lista todas.
func (s *Service) List(ctx context.Context, p access.Principal, f Filter) ([]Booking, error) {
	if err := access.Authorize(p, access.Request{Resource: access.ResourceBooking, Action: access.ActionReadMany}); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("invalid status")
	}
	return s.repo.List(ctx, f)
}

// Update aplica PATCH. Un cliente no puede mover la reserva a otra mascota.
// El slot solo se revalida si cambian fecha u hora.
func (s *Service) Update(ctx context.Context, p access.Principal, id string, in UpdateInput) (Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	owner, err := s.pets.OwnerOf(ctx, b.PetID)
	if err != nil {
		return Booking{}, err
	}

	req := request(access.ActionUpdate, owner)
	req.Facts.ReassignsPet = in.PetID.Set && strings.TrimSpace(in.PetID.Value) != b.PetID
	if err := access.Authorize(p, req); err != nil {
		return Booking{}, err
	}

	if in.PetID.Nulled() || in.ServiceID.Nulled() || in.Date.Nulled() || in.Time.Nulled() || in.Status.Nulled() {
		return Booking{}, apperr.Validation("pet_id, service_id, date, time and status cannot be null")
	}

	prevDate, prevTime := b.Date, b.Time

	if req.Facts.ReassignsPet {
		newPet := strings.TrimSpace(in.PetID.Value)
		if _, err := s.pets.OwnerOf(ctx, newPet); err != nil {
			return Booking{}, err
		}
		b.PetID = newPet
	}
	if in.EmployeeID.Set {
		in.EmployeeID.Value = strings.TrimSpace(in.EmployeeID.Value)
		in.EmployeeID.ApplyPtr(&b.EmployeeID)
	}
	in.ServiceID.Apply(&b.ServiceID)
	b.ServiceID = strings.TrimSpace(b.ServiceID)
	in.Date.Apply(&b.Date)
	in.Time.Apply(&b.Time)
	in.Status.Apply(&b.Status)

	if b.Date.IsZero() {
		return Booking{}, apperr.Validation("date is required")
	}
	if !b.Status.Valid() {
		return Booking{}, apperr.Validation("invalid status")
	}
	if in.EmployeeID.Set || in.ServiceID.Set {
		if err := s.checkRefs(ctx, b); err != nil {
			return Booking{}, err
		}
	}

	slotChanged := b.Date != prevDate || b.Time != prevTime
	if slotChanged {
		if err := s.slots.Validate(b.Date, b.Time, schedule.KindBooking); err != nil {
			return Booking{}, err
		}
	}

	b.UpdatedAt = s.now()

	err = s.repo.WithinTx(ctx, func(tx Store) error {
		if slotChanged || req.Facts.ReassignsPet {
			if err := checkConflict(ctx, tx, b); err != nil {
				return err
			}
		}
		return tx.Update(ctx, b)
	})
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner, err := s.pets.OwnerOf(ctx, b.PetID)
	if err != nil {
		return err
	}
	if err := access.Authorize(p, request(access.ActionDelete, owner)); err != nil {
		return err
	}
	return s.repo.Delete(ctx, b.ID)
}

func (s *Service) checkRefs(ctx context.Context, b Booking) error {
	if b.ServiceID == "" {
		return apperr.Validation("service_id is required")
	}
	if err := s.services.Exists(ctx, b.ServiceID); err != nil {
		return err
	}
	if b.EmployeeID != nil {
		if *b.EmployeeID == "" {
			return apperr.Validation("employee_id must not be empty")
		}
		if err := s.employees.Exists(ctx, *b.EmployeeID); err != nil {
			return err
		}
	}
	return nil
}

func checkConflict(ctx context.Context, tx Store, b Booking) error {
	taken, err := schedule.BookingConflict(ctx, tx, b.PetID, b.Date, b.Time, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("pet already has a booking at that date and time")
	}
	return nil
}

func request(a access.Action, ownerClientID string) access.Request {
	return access.Request{
		Resource: access.ResourceBooking,
		Action:   a,
		Facts:    access.Facts{OwnerClientID: ownerClientID},
	}
}
