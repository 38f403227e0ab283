package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// MsgUnavailable is returned for failures the user can retry
const MsgUnavailable = "Gagal menyimpan. Periksa koneksi atau coba lagi."

// classify maps a database error onto the apperror taxonomy:
// connectivity problems are retryable 503s, missing privileges are 403s and
// constraint violations are 422s. Anything else is wrapped with op.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501":
			return apperror.NewForbiddenError("Tidak memiliki izin untuk mengakses data kwitansi").Wrap(err)
		case strings.HasPrefix(pgErr.Code, "23"):
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: field, Message: pgErr.Message},
			}).Wrap(err)
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "57P"),
			pgErr.Code == "53300":
			return apperror.NewUnavailableError(MsgUnavailable, err)
		}
	}

	if isConnectivity(err) {
		return apperror.NewUnavailableError(MsgUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConnectivity(err error) bool {
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr):
		return true
	case pgconn.Timeout(err):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, driver.ErrBadConn):
		return true
	case errors.As(err, &netErr):
		return true
	}
	return false
}
