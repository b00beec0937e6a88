package orders

import (
	"context"
	"errors"
	"sort"

	"github.com/malafaareh/storefront/internal/jsonstore"
)

// FileRepo keeps the whole order collection in one JSON file. Writes go
// through the collection's mutex, which closes the lost-update window the
// naive read-all/write-all cycle would otherwise have.
type FileRepo struct {
	col *jsonstore.Collection[Order]
}

func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{col: jsonstore.NewCollection[Order](dir, "orders")}
}

func (r *FileRepo) Create(_ context.Context, o *Order) error {
	err := r.col.Update(func(all []Order) ([]Order, error) {
		return append(all, *o), nil
	})
	if err != nil {
		return storageError("create order", err)
	}
	return nil
}

func (r *FileRepo) ByUser(_ context.Context, userID string) ([]Order, error) {
	all, err := r.col.All()
	if err != nil {
		return nil, storageError("list orders", err)
	}
	out := make([]Order, 0)
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *FileRepo) All(_ context.Context) ([]Order, error) {
	all, err := r.col.All()
	if err != nil {
		return nil, storageError("list orders", err)
	}
	if all == nil {
		all = []Order{}
	}
	sortNewestFirst(all)
	return all, nil
}

func (r *FileRepo) UpdateStatus(_ context.Context, id string, status Status) (*Order, error) {
	var updated *Order
	err := r.col.Update(func(all []Order) ([]Order, error) {
		for i := range all {
			if all[i].ID == id {
				all[i].Status = status
				o := all[i]
				updated = &o
				return all, nil
			}
		}
		return nil, ErrOrderNotFound
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, storageError("update status", err)
	}
	return updated, nil
}

func sortNewestFirst(out []Order) {
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
