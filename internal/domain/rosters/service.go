package rosters

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

// EmployeeLookup devuelve apperr.ErrNotFound si el empleado no existe.
type EmployeeLookup interface {
	Exists(ctx context.Context, id string) error
}

type Service struct {
	repo      Repository
	employees EmployeeLookup
	slots     *schedule.Validator
	now       func() time.Time
}

func NewService(repo Repository, employees EmployeeLookup, slots *schedule.Validator) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		slots:     slots,
		now:       time.Now,
	}
}

type CreateInput struct {
	EmployeeID string
	Date       schedule.Date
}

type UpdateInput struct {
	EmployeeID patch.Field[string]
	Date       patch.Field[schedule.Date]
}

// Create: solo staff. Los rosters no tienen restricción de horario, solo de fecha.
func (s *Service) Create(ctx context.Context, p access.Principal, in CreateInput) (Roster, error) {
	if err := authorize(p, access.ActionCreate); err != nil {
		return Roster{}, err
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" || in.Date.IsZero() {
		return Roster{}, apperr.Validation("employee_id and date are required")
	}
	if err := s.employees.Exists(ctx, employeeID); err != nil {
		return Roster{}, err
	}
	if err := s.slots.Validate(in.Date, 0, schedule.KindRoster); err != nil {
		return Roster{}, err
	}

	now := s.now()
	r := Roster{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       in.Date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.repo.WithinTx(ctx, func(tx Store) error {
		if err := checkConflict(ctx, tx, r); err != nil {
			return err
		}
		return tx.Create(ctx, r)
	})
	if err != nil {
		return Roster{}, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, p access.Principal, id string) (Roster, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Roster{}, err
	}
	if err := authorize(p, access.ActionReadOne); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// List devuelve todos los rosters ordenados por fecha.
func (s *Service) List(ctx context.Context, p access.Principal) ([]Roster, error) {
	if err := authorize(p, access.ActionReadMany); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, Filter{})
}

func (s *Service) ListByDate(ctx context.Context, p access.Principal, d schedule.Date) ([]Roster, error) {
	if err := authorize(p, access.ActionReadMany); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, Filter{Date: &d})
}

func (s *Service) Update(ctx context.Context, p access.Principal, id string, in UpdateInput) (Roster, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Roster{}, err
	}
	if err := authorize(p, access.ActionUpdate); err != nil {
		return Roster{}, err
	}
	if in.EmployeeID.Nulled() || in.Date.Nulled() {
		return Roster{}, apperr.Validation("employee_id and date cannot be null")
	}

	prevEmployee, prevDate := r.EmployeeID, r.Date
	in.EmployeeID.Apply(&r.EmployeeID)
	in.Date.Apply(&r.Date)
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)

	if r.EmployeeID == "" || r.Date.IsZero() {
		return Roster{}, apperr.Validation("employee_id and date are required")
	}
	if r.EmployeeID != prevEmployee {
		if err := s.employees.Exists(ctx, r.EmployeeID); err != nil {
			return Roster{}, err
		}
	}
	if r.Date != prevDate {
		if err := s.slots.Validate(r.Date, 0, schedule.KindRoster); err != nil {
			return Roster{}, err
		}
	}

	r.UpdatedAt = s.now()
	changed := r.EmployeeID != prevEmployee || r.Date != prevDate

	err = s.repo.WithinTx(ctx, func(tx Store) error {
		if changed {
			if err := checkConflict(ctx, tx, r); err != nil {
				return err
			}
		}
		return tx.Update(ctx, r)
	})
	if err != nil {
		return Roster{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(p, access.ActionDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, r.ID)
}

func checkConflict(ctx context.Context, tx Store, r Roster) error {
	taken, err := schedule.RosterConflict(ctx, tx, r.EmployeeID, r.Date, r.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("employee is already rostered for this date")
	}
	return nil
}

func authorize(p access.Principal, a access.Action) error {
	return access.Authorize(p, access.Request{Resource: access.ResourceRoster, Action: a})
}
