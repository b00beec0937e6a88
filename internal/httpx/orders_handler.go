package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/malafaareh/storefront/internal/catalog"
	kafkax "github.com/malafaareh/storefront/internal/kafka"
	"github.com/malafaareh/storefront/internal/orders"
	"github.com/malafaareh/storefront/internal/redisx"
	"github.com/malafaareh/storefront/internal/users"
)

type OrdersHandler struct {
	Svc      *orders.Service
	Repo     orders.Repository
	Catalog  catalog.Store
	Redis    *redis.Client
	Producer *kafkax.Producer
	Service  string
}

func (h *OrdersHandler) Register(r *chi.Mux, a *Auth) {
	r.Group(func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Post("/api/orders", h.create)
		r.Get("/api/orders/me", h.mine)
		r.Get("/api/orders/{id}/status", h.status)
	})
}

// statusBody is what the redis cache holds per order. The user id rides
// along so the cached fast path can still enforce ownership.
type statusBody struct {
	UserID string        `json:"userId"`
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	var req struct {
		Items []orders.CartItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := withTimeout(r, 5*time.Second)
	defer cancel()

	products, err := h.Catalog.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load products")
		return
	}

	// Synchronous flow: the deployment simulates instant payment.
	order, err := h.Svc.Create(ctx, user.UserID, products, req.Items, orders.StatusPaid)
	if err != nil {
		respondCreateError(w, err)
		return
	}

	cacheStatus(ctx, h.Redis, order)
	publishOrderCreated(h.Producer, h.Service, order)

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) mine(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	ctx, cancel := withTimeout(r, 5*time.Second)
	defer cancel()

	list, err := h.Repo.ByUser(ctx, user.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) status(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())
	orderID := chi.URLParam(r, "id")

	ctx, cancel := withTimeout(r, 3*time.Second)
	defer cancel()

	if s := redisx.CachedStatus(ctx, h.Redis, orderID); s != "" {
		var body statusBody
		if json.Unmarshal([]byte(s), &body) == nil && canSee(user.UserID, user.Role, body.UserID) {
			writeJSON(w, http.StatusOK, map[string]orders.Status{"status": body.Status})
			return
		}
	}

	order, err := h.findVisible(ctx, user.UserID, user.Role, orderID)
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	cacheStatus(ctx, h.Redis, order)
	writeJSON(w, http.StatusOK, map[string]orders.Status{"status": order.Status})
}

// findVisible resolves an order the caller is allowed to see: their own, or
// any order for admins. Unknown and foreign ids are indistinguishable.
func (h *OrdersHandler) findVisible(ctx context.Context, userID, role, orderID string) (*orders.Order, error) {
	var list []orders.Order
	var err error
	if role == users.RoleAdmin {
		list, err = h.Repo.All(ctx)
	} else {
		list, err = h.Repo.ByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == orderID {
			return &list[i], nil
		}
	}
	return nil, orders.ErrOrderNotFound
}

func canSee(callerID, callerRole, ownerID string) bool {
	return callerID == ownerID || callerRole == users.RoleAdmin
}

func respondCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orders.ErrEmptyCart), errors.Is(err, orders.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "order could not be placed")
	}
}
