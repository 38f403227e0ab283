package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

func TestClassify(t *testing.T) {
	tcs := []struct {
		name      string
		err       error
		code      int
		retryable bool
	}{
		{name: "permission", err: &pgconn.PgError{Code: "42501"}, code: http.StatusForbidden},
		{name: "not null", err: &pgconn.PgError{Code: "23502", ColumnName: "terima_dari"}, code: http.StatusUnprocessableEntity},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, code: http.StatusServiceUnavailable, retryable: true},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, code: http.StatusServiceUnavailable, retryable: true},
		{name: "deadline", err: context.DeadlineExceeded, code: http.StatusServiceUnavailable, retryable: true},
		{name: "bad conn", err: driver.ErrBadConn, code: http.StatusServiceUnavailable, retryable: true},
		{name: "unknown", err: errors.New("syntax error"), code: http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := classify("save kwitansi", tc.err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.retryable, apperror.IsRetryable(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestClassify_ValidationNamesField(t *testing.T) {
	err := classify("save kwitansi", &pgconn.PgError{Code: "23505", ConstraintName: "kwitansi_pkey", Message: "duplicate key"})

	appErr := apperror.GetAppError(err)
	if assert.Len(t, appErr.Errors, 1) {
		assert.Equal(t, "kwitansi_pkey", appErr.Errors[0].Field)
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify("noop", nil))
}
