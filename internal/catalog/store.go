package catalog

import "context"

// Store is the read path for pricing and the write path for the admin
// back-office. Both implementations expose identical behavior so callers
// never know which backend is active.
type Store interface {
	All(ctx context.Context) ([]Product, error)
	Add(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int64, u ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// ByID resolves a product from an already-fetched snapshot, so one request
// prices every cart line against the same catalog state.
func ByID(products []Product, id int64) (*Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}
	return nil, false
}
