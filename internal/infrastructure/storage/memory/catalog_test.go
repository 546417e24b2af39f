package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_Seed(t *testing.T) {
	repo := NewProductRepo()
	ctx := context.Background()

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	ok, err := repo.Exists(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "99")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnitRepo_Seed(t *testing.T) {
	repo := NewUnitRepo()
	ctx := context.Background()

	units, err := repo.List(ctx)
	require.NoError(t, err)

	codes := make([]string, len(units))
	for i, u := range units {
		codes[i] = u.Code
	}
	assert.ElementsMatch(t, []string{"box", "unit", "ampoule", "bottle"}, codes)

	ok, err := repo.Exists(ctx, "box")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "crate")
	require.NoError(t, err)
	assert.False(t, ok)
}
