package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/malafaareh/storefront/internal/catalog"
)

type ProductsHandler struct {
	Catalog catalog.Store
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/api/produits", h.list)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, 3*time.Second)
	defer cancel()

	products, err := h.Catalog.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load products")
		return
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filtered := make([]catalog.Product, 0, len(products))
		for _, p := range products {
			if p.Category == cat {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}
