package orders

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrStorage classifies backend read/write failures, so callers can
	// tell an unreachable store from a domain error like ErrOrderNotFound.
	ErrStorage = errors.New("order storage failure")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Repository is implemented by the file-backed and the Postgres store with
// identical contracts, so the rest of the system is backend-agnostic.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	// ByUser returns the user's orders newest first; empty slice when none.
	ByUser(ctx context.Context, userID string) ([]Order, error)
	// All is the admin listing, newest first.
	All(ctx context.Context) ([]Order, error)
	// UpdateStatus transitions status only and returns the updated record.
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
