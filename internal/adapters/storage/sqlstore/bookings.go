package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/bookings"
	"pet-spa-booking/internal/domain/schedule"
)

type bookingRow struct {
	ID         string         `db:"id"`
	PetID      string         `db:"pet_id"`
	EmployeeID sql.NullString `db:"employee_id"`
	ServiceID  string         `db:"service_id"`
	Date       string         `db:"date"`
	Time       string         `db:"time"`
	Status     string         `db:"status"`
	CreatedAt  string         `db:"created_at"`
	UpdatedAt  string         `db:"updated_at"`
}

func (r bookingRow) toDomain() (bookings.Booking, error) {
	d, err := schedule.ParseDate(r.Date)
	if err != nil {
		return bookings.Booking{}, fmt.Errorf("booking %s: %w", r.ID, err)
	}
	at, err := schedule.ParseTimeOfDay(r.Time)
	if err != nil {
		return bookings.Booking{}, fmt.Errorf("booking %s: %w", r.ID, err)
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return bookings.Booking{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return bookings.Booking{}, err
	}
	b := bookings.Booking{
		ID:        r.ID,
		PetID:     r.PetID,
		ServiceID: r.ServiceID,
		Date:      d,
		Time:      at,
		Status:    bookings.Status(r.Status),
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if r.EmployeeID.Valid {
		id := r.EmployeeID.String
		b.EmployeeID = &id
	}
	return b, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

const bookingColumns = `id, pet_id, employee_id, service_id, date, time, status, created_at, updated_at`

// BookingRepo: UNIQUE(pet_id, date, time) respalda el chequeo hecho en WithinTx.
type BookingRepo struct {
	bookingStore
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{bookingStore: bookingStore{q: db}, db: db}
}

func (r *BookingRepo) WithinTx(ctx context.Context, fn func(tx bookings.Store) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(bookingStore{q: tx})
	})
}

// List ordena por fecha y hora.
func (r *BookingRepo) List(ctx context.Context, f bookings.Filter) ([]bookings.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if f.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY date, time, id`

	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, mapErr(err, "booking")
	}
	out := make([]bookings.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// bookingStore corre sobre la conexión o sobre una transacción abierta.
type bookingStore struct {
	q sqlx.ExtContext
}

func (s bookingStore) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	var row bookingRow
	q := s.q.Rebind(`SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.q, &row, q, id); err != nil {
		return bookings.Booking{}, mapErr(err, "booking")
	}
	return row.toDomain()
}

func (s bookingStore) BookingAt(ctx context.Context, petID string, d schedule.Date, at schedule.TimeOfDay) (string, error) {
	var id string
	q := s.q.Rebind(`SELECT id FROM bookings WHERE pet_id = ? AND date = ? AND time = ?`)
	err := sqlx.GetContext(ctx, s.q, &id, q, petID, d.String(), at.String())
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s bookingStore) Create(ctx context.Context, b bookings.Booking) error {
	q := s.q.Rebind(`INSERT INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.q.ExecContext(ctx, q,
		b.ID, b.PetID, nullString(b.EmployeeID), b.ServiceID, b.Date.String(), b.Time.String(), string(b.Status),
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	return mapBookingErr(err)
}

func (s bookingStore) Update(ctx context.Context, b bookings.Booking) error {
	q := s.q.Rebind(`UPDATE bookings SET pet_id = ?, employee_id = ?, service_id = ?, date = ?, time = ?, status = ?, updated_at = ? WHERE id = ?`)
	res, err := s.q.ExecContext(ctx, q,
		b.PetID, nullString(b.EmployeeID), b.ServiceID, b.Date.String(), b.Time.String(), string(b.Status),
		formatTime(b.UpdatedAt), b.ID,
	)
	if err != nil {
		return mapBookingErr(err)
	}
	return mustAffect(res, "booking")
}

func (s bookingStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, s.q.Rebind(`DELETE FROM bookings WHERE id = ?`), id)
	if err != nil {
		return mapDeleteErr(err, "booking")
	}
	return mustAffect(res, "booking")
}

func mapBookingErr(err error) error {
	if err != nil && isUniqueViolation(err) {
		return apperr.Conflict("pet already has a booking at that date and time").WithCause(err)
	}
	return mapErr(err, "booking")
}
