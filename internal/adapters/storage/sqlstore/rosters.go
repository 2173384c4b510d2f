package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/rosters"
	"pet-spa-booking/internal/domain/schedule"
)

type rosterRow struct {
	ID         string `db:"id"`
	EmployeeID string `db:"employee_id"`
	Date       string `db:"date"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

func (r rosterRow) toDomain() (rosters.Roster, error) {
	d, err := schedule.ParseDate(r.Date)
	if err != nil {
		return rosters.Roster{}, fmt.Errorf("roster %s: %w", r.ID, err)
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return rosters.Roster{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return rosters.Roster{}, err
	}
	return rosters.Roster{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       d,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

const rosterColumns = `id, employee_id, date, created_at, updated_at`

type RosterRepo struct {
	rosterStore
	db *sqlx.DB
}

func NewRosterRepo(db *sqlx.DB) *RosterRepo {
	return &RosterRepo{rosterStore: rosterStore{q: db}, db: db}
}

func (r *RosterRepo) WithinTx(ctx context.Context, fn func(tx rosters.Store) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(rosterStore{q: tx})
	})
}

// List ordena por fecha y empleado.
func (r *RosterRepo) List(ctx context.Context, f rosters.Filter) ([]rosters.Roster, error) {
	query := `SELECT ` + rosterColumns + ` FROM rosters`
	var args []any
	if f.Date != nil {
		query += ` WHERE date = ?`
		args = append(args, f.Date.String())
	}
	query += ` ORDER BY date, employee_id, id`

	var rows []rosterRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, mapErr(err, "roster")
	}
	out := make([]rosters.Roster, 0, len(rows))
	for _, row := range rows {
		ro, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	return out, nil
}

type rosterStore struct {
	q sqlx.ExtContext
}

func (s rosterStore) GetByID(ctx context.Context, id string) (rosters.Roster, error) {
	var row rosterRow
	q := s.q.Rebind(`SELECT ` + rosterColumns + ` FROM rosters WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.q, &row, q, id); err != nil {
		return rosters.Roster{}, mapErr(err, "roster")
	}
	return row.toDomain()
}

func (s rosterStore) RosterOn(ctx context.Context, employeeID string, d schedule.Date) (string, error) {
	var id string
	q := s.q.Rebind(`SELECT id FROM rosters WHERE employee_id = ? AND date = ?`)
	err := sqlx.GetContext(ctx, s.q, &id, q, employeeID, d.String())
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s rosterStore) Create(ctx context.Context, r rosters.Roster) error {
	q := s.q.Rebind(`INSERT INTO rosters (` + rosterColumns + `) VALUES (?, ?, ?, ?, ?)`)
	_, err := s.q.ExecContext(ctx, q, r.ID, r.EmployeeID, r.Date.String(), formatTime(r.CreatedAt), formatTime(r.UpdatedAt))
	return mapRosterErr(err)
}

func (s rosterStore) Update(ctx context.Context, r rosters.Roster) error {
	q := s.q.Rebind(`UPDATE rosters SET employee_id = ?, date = ?, updated_at = ? WHERE id = ?`)
	res, err := s.q.ExecContext(ctx, q, r.EmployeeID, r.Date.String(), formatTime(r.UpdatedAt), r.ID)
	if err != nil {
		return mapRosterErr(err)
	}
	return mustAffect(res, "roster")
}

func (s rosterStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, s.q.Rebind(`DELETE FROM rosters WHERE id = ?`), id)
	if err != nil {
		return mapDeleteErr(err, "roster")
	}
	return mustAffect(res, "roster")
}

func mapRosterErr(err error) error {
	if err != nil && isUniqueViolation(err) {
		return apperr.Conflict("employee is already rostered for this date").WithCause(err)
	}
	return mapErr(err, "roster")
}
