package sqlerr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/database/databasetest"
	"github.com/JoeWHoward/DockerPlayground/internal/errs"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
	"github.com/JoeWHoward/DockerPlayground/internal/sqlerr"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "want *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_Postgres(t *testing.T) {
	tests := []struct {
		name     string
		pgErr    *pgconn.PgError
		status   int
		code     string
		message  string
		override bool
	}{
		{
			name:    "foreign key",
			pgErr:   &pgconn.PgError{Code: "23503", TableName: "address", ColumnName: "user_id"},
			status:  http.StatusBadRequest,
			code:    "ADDRESS_NOT_FOUND",
			message: "The referenced User does not exist",
		},
		{
			name:     "unique with constraint name",
			pgErr:    &pgconn.PgError{Code: "23505", TableName: "user_account", ConstraintName: "user_account_name_key"},
			status:   http.StatusBadRequest,
			code:     "USER_ACCOUNT_ALREADY_EXISTS",
			message:  "A User Account with this Name already exists",
			override: true,
		},
		{
			name:     "not null",
			pgErr:    &pgconn.PgError{Code: "23502", TableName: "address", ColumnName: "email_address"},
			status:   http.StatusBadRequest,
			code:     "ADDRESS_REQUIRED",
			message:  "The Email Address is required",
			override: true,
		},
		{
			name:     "check",
			pgErr:    &pgconn.PgError{Code: "23514", TableName: "genome", ColumnName: "chromosome"},
			status:   http.StatusBadRequest,
			code:     "GENOME_INVALID",
			message:  "The Chromosome value does not meet required conditions",
			override: true,
		},
		{
			name:     "string too long",
			pgErr:    &pgconn.PgError{Code: "22001", TableName: "user_account", ColumnName: "name"},
			status:   http.StatusBadRequest,
			code:     "USER_ACCOUNT_INVALID",
			message:  "The Name value is too long",
			override: true,
		},
		{
			name:    "other",
			pgErr:   &pgconn.PgError{Code: "57014"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("failed to flush: %w", tt.pgErr)
			httpErr := asHTTPError(t, sqlerr.HandleError(err))

			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, tt.override, httpErr.Override)
		})
	}
}

func TestHandleError_NotNullFieldErrors(t *testing.T) {
	err := &pgconn.PgError{Code: "23502", TableName: "address", ColumnName: "email_address"}
	httpErr := asHTTPError(t, sqlerr.HandleError(err))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "email_address", Error: "is required"}, httpErr.Errors[0])
}

func TestHandleError_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"user table", fmt.Errorf("table:user_account: %w", gorm.ErrRecordNotFound), "User Account not found"},
		{"address is not singularized away", fmt.Errorf("table:address: %w", gorm.ErrRecordNotFound), "Address not found"},
		{"plural table", fmt.Errorf("table:genomes: %w", gorm.ErrRecordNotFound), "Genome not found"},
		{"no table", gorm.ErrRecordNotFound, "Resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, sqlerr.HandleError(tt.err))
			assert.Equal(t, http.StatusNotFound, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	original := errs.NewBadRequestError("nope", true, nil, nil, nil)
	assert.Same(t, original, sqlerr.HandleError(original))

	httpErr := asHTTPError(t, sqlerr.HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleError_SQLite(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	t.Run("not null", func(t *testing.T) {
		sess := db.NewSession(ctx)
		defer sess.Close()

		require.NoError(t, sess.Add(&model.Address{}))
		err := sess.Commit()
		require.Error(t, err)
		assert.Equal(t, sqlerr.Other, sqlerr.ErrCode(err), "raw driver errors are not converted")

		httpErr := asHTTPError(t, sqlerr.HandleError(err))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "ADDRESS_REQUIRED", httpErr.Code)
		assert.Equal(t, "The Email Address is required", httpErr.Message)
	})

	t.Run("foreign key", func(t *testing.T) {
		sess := db.NewSession(ctx)
		defer sess.Close()

		email := "nobody@example.com"
		missing := int64(999)
		require.NoError(t, sess.Add(&model.Address{EmailAddress: &email, UserID: &missing}))
		err := sess.Commit()
		require.Error(t, err)

		httpErr := asHTTPError(t, sqlerr.HandleError(err))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "RECORD_NOT_FOUND", httpErr.Code)
	})

	t.Run("check on user name", func(t *testing.T) {
		sess := db.NewSession(ctx)
		defer sess.Close()

		require.NoError(t, sess.Add(&model.User{Name: strings.Repeat("n", 31)}))
		err := sess.Commit()
		require.Error(t, err)

		httpErr := asHTTPError(t, sqlerr.HandleError(err))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "USER_ACCOUNT_INVALID", httpErr.Code)
		assert.True(t, httpErr.Override)
	})

	t.Run("missing row", func(t *testing.T) {
		sess := db.NewSession(ctx)
		defer sess.Close()

		_, err := database.Get[model.Address](sess, 42)
		httpErr := asHTTPError(t, sqlerr.HandleError(err))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Address not found", httpErr.Message)
	})
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.MapCode("23503"))
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.MapCode("23505"))
	assert.Equal(t, sqlerr.NotNullViolation, sqlerr.MapCode("23502"))
	assert.Equal(t, sqlerr.CheckViolation, sqlerr.MapCode("23514"))
	assert.Equal(t, sqlerr.StringDataRightTruncation, sqlerr.MapCode("22001"))
	assert.Equal(t, sqlerr.Other, sqlerr.MapCode("42P01"))

	assert.Equal(t, sqlerr.SeverityFatal, sqlerr.MapSeverity("FATAL"))
	assert.Equal(t, sqlerr.SeverityUnknown, sqlerr.MapSeverity("LOUD"))
}

func TestErrCode(t *testing.T) {
	converted := sqlerr.ConvertPgError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})
	wrapped := fmt.Errorf("insert: %w", converted)

	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(wrapped))
	assert.Equal(t, sqlerr.Other, sqlerr.ErrCode(errors.New("plain")))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(wrapped, &pgErr), "the driver error stays reachable")
}
