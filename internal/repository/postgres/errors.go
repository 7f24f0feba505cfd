package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/comedorlabs/comedor-server/internal/model"
)

// SQLSTATE class 23505, unique_violation.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// storeErr wraps a driver failure so callers can match
// model.ErrStoreUnavailable and decide to retry.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}
