package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malafaareh/storefront/internal/catalog"
	"github.com/malafaareh/storefront/internal/orders"
)

func newAdminServer(t *testing.T) (*httptest.Server, orders.Repository, catalog.Store) {
	t.Helper()
	repo := orders.NewFileRepo(t.TempDir())
	store := catalog.NewMemoryStore()
	router := NewRouter()
	(&AdminHandler{Catalog: store, Repo: repo}).Register(router, &Auth{Secret: testSecret})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, repo, store
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	srv, _, _ := newAdminServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/admin/orders", "", sessionCookie(t, "alice", "user"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/admin/orders", "", sessionCookie(t, "root", "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminProductCRUD(t *testing.T) {
	srv, _, _ := newAdminServer(t)
	admin := sessionCookie(t, "root", "admin")

	resp := doJSON(t, srv, http.MethodPost, "/api/admin/produits",
		`{"name":"Ceinture Tressée","price":30000,"description":"d","category":"Accessoires","imageUrl":"https://img"}`, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created catalog.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)

	resp = doJSON(t, srv, http.MethodPut, "/api/admin/produits/3", `{"price":130000}`, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated catalog.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, int64(130000), updated.Price)
	assert.Equal(t, "Veste Minimaliste en Cuir", updated.Name, "partial update must not clear other fields")

	resp = doJSON(t, srv, http.MethodDelete, "/api/admin/produits/12", "", admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodDelete, "/api/admin/produits/12", "", admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPut, "/api/admin/produits/9999", `{"price":1}`, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminPaymentsView_IsProjectionOfOrders(t *testing.T) {
	srv, repo, _ := newAdminServer(t)

	o := &orders.Order{
		ID:     uuid.NewString(),
		UserID: "alice",
		Items: []orders.OrderItem{
			{ProductID: 1, Quantity: 1, Price: 199000},
		},
		Total:     199000,
		Currency:  "XAF",
		Status:    orders.StatusPaid,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), o))

	resp := doJSON(t, srv, http.MethodGet, "/api/admin/payments", "", sessionCookie(t, "root", "admin"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []paymentView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, o.ID, views[0].ID)
	assert.Equal(t, "alice", views[0].UserID)
	assert.Equal(t, int64(199000), views[0].Amount)
	assert.Equal(t, "XAF", views[0].Currency)
	assert.Equal(t, orders.StatusPaid, views[0].Status)
}
