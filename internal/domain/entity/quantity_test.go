package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

func TestNewQuantity_ValidValues(t *testing.T) {
	for _, n := range []int64{0, 1, 100, entity.MaxQuantity} {
		q, err := entity.NewQuantity(n)
		require.NoError(t, err)
		assert.Equal(t, n, q.Value())
	}
}

func TestNewQuantity_Negative(t *testing.T) {
	_, err := entity.NewQuantity(-5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewQuantity_ExceedsBound(t *testing.T) {
	_, err := entity.NewQuantity(1_000_000_000)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuantity_AddSub(t *testing.T) {
	q, err := entity.NewQuantity(100)
	require.NoError(t, err)

	up, err := q.Add(50)
	require.NoError(t, err)
	assert.Equal(t, int64(150), up.Value())

	down, err := up.Sub(150)
	require.NoError(t, err)
	assert.Equal(t, int64(0), down.Value())

	// Arithmetic re-validates: no silent clamping below zero or above the bound.
	_, err = down.Sub(1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = q.Add(entity.MaxQuantity)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuantity_EqualityByValue(t *testing.T) {
	a, _ := entity.NewQuantity(42)
	b, _ := entity.NewQuantity(42)
	assert.Equal(t, a, b)
}
