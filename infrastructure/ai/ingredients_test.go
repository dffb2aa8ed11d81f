package ai

import (
	"testing"

	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPairDistinct(t *testing.T) {
	pool := NewIngredientPool([]string{"toaster", "umbrella", "houseplant"}, 42)

	for i := 0; i < 100; i++ {
		first, second, err := pool.RandomPair()
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.Contains(t, pool.All(), first)
		assert.Contains(t, pool.All(), second)
	}
}

func TestRandomPairTwoItems(t *testing.T) {
	pool := NewIngredientPool([]string{"toaster", "umbrella"}, 1)

	first, second, err := pool.RandomPair()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRandomPairPoolTooSmall(t *testing.T) {
	pool := NewIngredientPool([]string{"toaster"}, 1)

	_, _, err := pool.RandomPair()
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeInternal))
}

func TestDefaultPool(t *testing.T) {
	pool := NewIngredientPool(nil, 1)
	assert.GreaterOrEqual(t, len(pool.All()), 2)

	_, _, err := pool.RandomPair()
	assert.NoError(t, err)
}

func TestAllReturnsCopy(t *testing.T) {
	pool := NewIngredientPool([]string{"toaster", "umbrella"}, 1)

	items := pool.All()
	items[0] = "mutated"

	assert.Equal(t, "toaster", pool.All()[0])
}
