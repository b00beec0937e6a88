package catalog

import (
	"context"
	"sync"
)

// MemoryStore serves the catalog when no database is configured. It starts
// from the seed listing; admin mutations live only for the process lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemoryStore() *MemoryStore {
	seed := Seed()
	products := make([]Product, len(seed))
	copy(products, seed)
	return &MemoryStore{products: products}
}

func (s *MemoryStore) All(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) Add(_ context.Context, p Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, existing := range s.products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	s.products = append(s.products, p)
	return &p, nil
}

func (s *MemoryStore) Update(_ context.Context, id int64, u ProductUpdate) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].apply(u)
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}
