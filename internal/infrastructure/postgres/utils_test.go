package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgudino/stock-ledger-api/internal/domain"
)

// Optional uuid columns (warehouses.address_id, stock_movements.created_by_id)
// must receive SQL NULL for an absent value, never an empty string: '' is not
// a valid uuid literal and the insert would fail.
func TestNullableUUID(t *testing.T) {
	assert.Nil(t, nullableUUID(""))

	id := "00000000-0000-0000-0000-000000000001"
	got := nullableUUID(id)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

func TestStorageErr_Classification(t *testing.T) {
	serialization := &pgconn.PgError{Code: "40001"}
	deadlock := &pgconn.PgError{Code: "40P01"}
	unique := &pgconn.PgError{Code: "23505"}
	other := &pgconn.PgError{Code: "42601"}

	assert.ErrorIs(t, storageErr("op", serialization), domain.ErrConflict)
	assert.ErrorIs(t, storageErr("op", deadlock), domain.ErrConflict)
	assert.ErrorIs(t, storageErr("op", unique), domain.ErrConflict)
	assert.ErrorIs(t, storageErr("op", other), domain.ErrStorage)
	assert.ErrorIs(t, storageErr("op", errors.New("conn refused")), domain.ErrStorage)
}

// The original pgx error stays in the chain for operators.
func TestStorageErr_KeepsOriginalError(t *testing.T) {
	orig := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	wrapped := storageErr("insert movement", orig)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(wrapped, &pgErr))
	assert.Equal(t, "42601", pgErr.Code)
}
