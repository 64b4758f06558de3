package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dlalic/unpacking/internal/model"
)

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

// mapError downgrades the two recoverable storage failures to sentinel
// errors from the model package and wraps everything else with the operation
// description.
func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}
