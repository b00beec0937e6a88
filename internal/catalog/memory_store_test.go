package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SeededListing(t *testing.T) {
	store := NewMemoryStore()

	products, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, len(Seed()))

	p, ok := ByID(products, 1)
	require.True(t, ok)
	assert.Equal(t, int64(199000), p.Price)

	_, ok = ByID(products, 7)
	assert.False(t, ok, "seed ids are sparse")
}

func TestMemoryStore_AddAssignsNextID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Add(ctx, Product{Name: "Ceinture", Price: 30000, Category: "Accessoires"})
	require.NoError(t, err)
	assert.Equal(t, int64(13), created.ID, "next id after the highest seeded id")

	products, err := store.All(ctx)
	require.NoError(t, err)
	_, ok := ByID(products, created.ID)
	assert.True(t, ok)
}

func TestMemoryStore_PartialUpdate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	price := int64(130000)
	updated, err := store.Update(ctx, 3, ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, "Veste Minimaliste en Cuir", updated.Name)

	_, err = store.Update(ctx, 9999, ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 12))
	assert.ErrorIs(t, store.Delete(ctx, 12), ErrProductNotFound)

	products, err := store.All(ctx)
	require.NoError(t, err)
	_, ok := ByID(products, 12)
	assert.False(t, ok)
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	products, err := store.All(ctx)
	require.NoError(t, err)
	products[0].Price = 1

	fresh, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(199000), fresh[0].Price, "callers must not mutate store state")
}
