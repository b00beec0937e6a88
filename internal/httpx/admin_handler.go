package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/malafaareh/storefront/internal/catalog"
	"github.com/malafaareh/storefront/internal/orders"
)

// AdminHandler is the back-office API: product CRUD plus order and payment
// listings. Everything under /api/admin requires the admin role.
type AdminHandler struct {
	Catalog catalog.Store
	Repo    orders.Repository
}

func (h *AdminHandler) Register(r *chi.Mux, a *Auth) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(a.RequireAuth, a.RequireAdmin)
		r.Get("/produits", h.listProducts)
		r.Post("/produits", h.addProduct)
		r.Put("/produits/{id}", h.updateProduct)
		r.Delete("/produits/{id}", h.deleteProduct)
		r.Get("/orders", h.listOrders)
		r.Get("/payments", h.listPayments)
	})
}

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, 3*time.Second)
	defer cancel()

	products, err := h.Catalog.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load products")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *AdminHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p.Name == "" || p.Price <= 0 || p.Category == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := withTimeout(r, 3*time.Second)
	defer cancel()

	created, err := h.Catalog.Add(ctx, p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not add product")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var u catalog.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := withTimeout(r, 3*time.Second)
	defer cancel()

	updated, err := h.Catalog.Update(ctx, id, u)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not update product")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := withTimeout(r, 3*time.Second)
	defer cancel()

	if err := h.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, 5*time.Second)
	defer cancel()

	list, err := h.Repo.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// paymentView is derived from order state on every request; it is never
// stored on its own.
type paymentView struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Status    orders.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (h *AdminHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, 5*time.Second)
	defer cancel()

	list, err := h.Repo.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load payments")
		return
	}
	views := make([]paymentView, 0, len(list))
	for _, o := range list {
		views = append(views, paymentView{
			ID:        o.ID,
			UserID:    o.UserID,
			Amount:    o.Total,
			Currency:  o.Currency,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}
