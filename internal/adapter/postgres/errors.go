package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/motoshop/motoshop/internal/core/domain"
)

// translateError maps driver errors onto domain errors. entity names the
// row kind in "not found" messages.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23502":
			return fmt.Errorf("%w: required field %s is missing", domain.ErrConstraint, pqErr.Column)
		case "23503":
			return fmt.Errorf("%w: referenced row does not exist", domain.ErrConstraint)
		case "23505":
			return fmt.Errorf("%s %w", entity, domain.ErrConflict)
		case "23514":
			return fmt.Errorf("%w: check %s failed", domain.ErrConstraint, pqErr.Constraint)
		case "22001", "22003":
			return fmt.Errorf("%w: %s", domain.ErrConstraint, pqErr.Message)
		}
	}
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func checkAffected(result sql.Result, entity string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	}
	return nil
}
