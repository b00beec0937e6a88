package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malafaareh/storefront/internal/catalog"
)

func newTestService(t *testing.T) (*Service, *FileRepo) {
	t.Helper()
	repo := NewFileRepo(t.TempDir())
	return &Service{Repo: repo, Currency: "XAF"}, repo
}

func TestCreateOrder_PricesAndTotal(t *testing.T) {
	svc, _ := newTestService(t)
	products := catalog.Seed()

	cart := []CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	}
	order, err := svc.Create(context.Background(), "user-1", products, cart, StatusPaid)
	require.NoError(t, err)

	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(199000*2+125000*1), order.Total)
	assert.Equal(t, int64(199000), order.Items[0].Price)
	assert.Equal(t, int64(125000), order.Items[1].Price)
	assert.Equal(t, "XAF", order.Currency)
	assert.Equal(t, StatusPaid, order.Status)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	// The total must always equal the recomputed sum.
	var sum int64
	for _, it := range order.Items {
		sum += it.Price * int64(it.Quantity)
	}
	assert.Equal(t, sum, order.Total)
}

func TestCreateOrder_Persisted(t *testing.T) {
	svc, repo := newTestService(t)

	order, err := svc.Create(context.Background(), "user-1", catalog.Seed(), []CartItem{{ProductID: 4, Quantity: 1}}, StatusPending)
	require.NoError(t, err)

	stored, err := repo.ByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)
	assert.Equal(t, StatusPending, stored[0].Status)
}

func TestCreateOrder_UnknownProductRejectsWholeOrder(t *testing.T) {
	svc, repo := newTestService(t)

	cart := []CartItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	}
	_, err := svc.Create(context.Background(), "user-1", catalog.Seed(), cart, StatusPaid)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "no partial orders may be persisted")
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "user-1", catalog.Seed(), nil, StatusPaid)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrder_NonPositiveQuantity(t *testing.T) {
	svc, repo := newTestService(t)

	for _, qty := range []int{0, -3} {
		_, err := svc.Create(context.Background(), "user-1", catalog.Seed(), []CartItem{{ProductID: 1, Quantity: qty}}, StatusPaid)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateOrder_UniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		o, err := svc.Create(context.Background(), "user-1", catalog.Seed(), []CartItem{{ProductID: 2, Quantity: 1}}, StatusPaid)
		require.NoError(t, err)
		assert.False(t, seen[o.ID], "duplicate order id %s", o.ID)
		seen[o.ID] = true
	}
}
