// Package schedule valida si un (fecha, hora) es admisible para una reserva o
// un turno de roster, y detecta choques contra lo ya agendado.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"pet-spa-booking/internal/apperr"
)

const dateLayout = "2006-01-02"

// Date es un día calendario sin hora ni zona.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays devuelve la fecha desplazada n días (n puede ser negativo).
// At es el instante de d a la hora at en loc.
func (d Date) At(at TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, at.Hour(), at.Minute(), 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n))
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// TimeOfDay son minutos desde medianoche. Granularidad de minuto.
type TimeOfDay int

func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func ClockOf(t time.Time) TimeOfDay {
	return Clock(t.Hour(), t.Minute())
}

// ParseTimeOfDay acepta solo "HH:MM" en 24h.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("time must be HH:MM: %w", err)
	}
	return ClockOf(t), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Kind distingue reservas (fecha + hora) de rosters (solo fecha).
type Kind int

const (
	KindBooking Kind = iota
	KindRoster
)

// Horario del spa, ambos extremos incluidos.
var (
	OpensAt  = Clock(10, 0)
	ClosesAt = Clock(20, 0)
)

func WithinBusinessHours(t TimeOfDay) bool {
	return t >= OpensAt && t <= ClosesAt
}

// Validator aplica las reglas de calendario. "Hoy" y "ahora" se calculan con
// el reloj inyectado en la zona del spa.
type Validator struct {
	now func() time.Time
	loc *time.Location
}

func NewValidator(now func() time.Time, loc *time.Location) *Validator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Validator{now: now, loc: loc}
}

// Today es la fecha actual en la zona del spa.
func (v *Validator) Today() Date {
	return DateOf(v.now().In(v.loc))
}

// Validate devuelve nil o un apperr InvalidSlot con su motivo.
//
// El horario se revisa primero: una hora fuera de 10:00-20:00 es inválida
// sea cual sea la fecha. Para KindRoster se ignora la hora.
func (v *Validator) Validate(d Date, at TimeOfDay, kind Kind) error {
	if kind == KindBooking && !WithinBusinessHours(at) {
		return apperr.InvalidSlot(apperr.ReasonOutsideBusinessHours)
	}

	local := v.now().In(v.loc)
	today := DateOf(local)

	if d.Before(today) {
		return apperr.InvalidSlot(apperr.ReasonPastDate)
	}
	if kind == KindBooking && d == today && d.At(at, v.loc).Before(local) {
		return apperr.InvalidSlot(apperr.ReasonPastTime)
	}
	return nil
}
