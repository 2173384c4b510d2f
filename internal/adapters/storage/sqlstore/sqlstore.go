// Package sqlstore implementa los repositorios sobre database/sql vía sqlx.
// Las queries usan "?" y se pasan por Rebind, así el mismo código sirve para
// Postgres (pgx) y SQLite (modernc). Fechas, horas y timestamps van como TEXT.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/apperr"
)

// Códigos SQLSTATE de Postgres.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Migrate aplica un DDL con varias sentencias separadas por ";".
func Migrate(ctx context.Context, db *sqlx.DB, ddl string) error {
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// withTx corre fn en una transacción; rollback si fn falla o entra en pánico.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapErr(err, "transaction")
	}
	return nil
}

// mapErr traduce errores del driver a apperr. what nombra la entidad.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what + " not found")
	}
	switch {
	case isUniqueViolation(err):
		return apperr.Conflict(what + " already exists").WithCause(err)
	case isForeignKeyViolation(err):
		return apperr.NotFound("referenced entity not found").WithCause(err)
	}
	return err
}

// mapDeleteErr: borrar una fila aún referenciada es un Conflict, no un NotFound.
func mapDeleteErr(err error, what string) error {
	if isForeignKeyViolation(err) {
		return apperr.Conflict(what + " is still referenced").WithCause(err)
	}
	return mapErr(err, what)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// mustAffect devuelve NotFound si el UPDATE/DELETE no tocó filas.
func mustAffect(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
