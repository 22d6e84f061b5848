package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("asset 5: %w", ErrNotFound), http.StatusNotFound},
		{"validation", Validationf("description is required"), http.StatusBadRequest},
		{"conflict", Conflictf("asset already has an open request"), http.StatusConflict},
		{"invalid state", fmt.Errorf("%w: already approved", ErrInvalidState), http.StatusConflict},
		{"expired token", ErrTokenExpired, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "assets_asset_number_key"}
	wrapped := fmt.Errorf("insert asset: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.True(t, IsUniqueViolation(wrapped, "assets_asset_number_key"))
	assert.False(t, IsUniqueViolation(wrapped, "users_username_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(fmt.Errorf("plain"), ""))
}

func TestHttpErrorUnwrap(t *testing.T) {
	err := NewHttpError(http.StatusNotFound, "asset not found", ErrNotFound, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "asset not found")
}
