package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/malafaareh/storefront/internal/catalog"
)

var (
	ErrEmptyCart       = errors.New("empty cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Service turns a submitted cart into a priced, persisted order. Callers
// pass in the catalog snapshot they already fetched so every line of one
// order is priced against the same state.
type Service struct {
	Repo     Repository
	Currency string
}

func (s *Service) Create(ctx context.Context, userID string, products []catalog.Product, cart []CartItem, status Status) (*Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	items := make([]OrderItem, 0, len(cart))
	var total int64
	for _, c := range cart {
		if c.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, c.ProductID)
		}
		p, ok := catalog.ByID(products, c.ProductID)
		if !ok {
			// Reject the whole order; no partial orders.
			return nil, fmt.Errorf("%w: %d", catalog.ErrProductNotFound, c.ProductID)
		}
		items = append(items, OrderItem{ProductID: c.ProductID, Quantity: c.Quantity, Price: p.Price})
		total += p.Price * int64(c.Quantity)
	}

	o := &Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Total:     total,
		Currency:  s.Currency,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return o, nil
}
