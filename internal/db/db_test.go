package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"pitchlink/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	dbx := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("owner@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := Exists(context.Background(), dbx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, "owner@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"no rows", sql.ErrNoRows, apperr.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("get: %w", sql.ErrNoRows), apperr.ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505", Constraint: "users_email_key"}, apperr.ErrConflict},
		{"foreign key violation", &pq.Error{Code: "23503", Constraint: "bookings_pitch_id_fkey"}, apperr.ErrConflict},
		{"check violation", &pq.Error{Code: "23514", Constraint: "pitches_price_per_hour_check"}, apperr.ErrValidation},
		{"connection failure", &pq.Error{Code: "08006"}, apperr.ErrUnavailable},
		{"admin shutdown", &pq.Error{Code: "57P01"}, apperr.ErrUnavailable},
		{"deadline", context.DeadlineExceeded, apperr.ErrUnavailable},
		{"conn done", sql.ErrConnDone, apperr.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err, "pitch")
			assert.True(t, errors.Is(got, tt.kind), "got %v", got)
		})
	}
}

func TestClassifyPassThrough(t *testing.T) {
	assert.Nil(t, Classify(nil, "pitch"))

	plain := errors.New("syntax error")
	assert.Equal(t, plain, Classify(plain, "pitch"))

	already := apperr.Validation("name", "Name is required")
	assert.Equal(t, already, Classify(already, "pitch"))
}

func TestClassifyNotFoundMessage(t *testing.T) {
	assert.Equal(t, "booking not found", Classify(sql.ErrNoRows, "booking").Error())
}
