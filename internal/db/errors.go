package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Describe returns a human readable message for err. PostgreSQL errors expose
// their server message and detail instead of the full wrapped chain.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return pgErr.Message + ": " + pgErr.Detail
		}
		return pgErr.Message
	}
	return err.Error()
}
