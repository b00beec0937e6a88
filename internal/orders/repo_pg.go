package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepo struct{ DB *pgxpool.Pool }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storageError("begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `INSERT INTO orders (id, user_id, total, currency, status, created_at)
	                       VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.UserID, o.Total, o.Currency, o.Status, o.CreatedAt)
	if err != nil {
		return storageError("insert order", err)
	}
	for i, it := range o.Items {
		_, err = tx.Exec(ctx, `INSERT INTO order_items (order_id, ordinal, product_id, quantity, price)
		                       VALUES ($1, $2, $3, $4, $5)`,
			o.ID, i, it.ProductID, it.Quantity, it.Price)
		if err != nil {
			return storageError("insert order item", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return storageError("commit", err)
	}
	return nil
}

func (r *PGRepo) ByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, `SELECT id, user_id, total, currency, status, created_at
	                    FROM orders WHERE user_id = $1
	                    ORDER BY created_at DESC`, userID)
}

func (r *PGRepo) All(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT id, user_id, total, currency, status, created_at
	                    FROM orders ORDER BY created_at DESC`)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `UPDATE orders SET status = $2 WHERE id = $1
	                           RETURNING id, user_id, total, currency, status, created_at`,
		id, status).Scan(&o.ID, &o.UserID, &o.Total, &o.Currency, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError("update status", err)
	}
	if err := r.attachItems(ctx, []*Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError("list orders", err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Currency, &o.Status, &o.CreatedAt); err != nil {
			return nil, storageError("scan order", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list orders", err)
	}

	refs := make([]*Order, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Items = []OrderItem{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	// ordinal preserves the cart's line order; without it the heap decides.
	rows, err := r.DB.Query(ctx, `SELECT order_id, product_id, quantity, price
	                              FROM order_items WHERE order_id = ANY($1)
	                              ORDER BY order_id, ordinal`, ids)
	if err != nil {
		return storageError("load order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return storageError("scan order item", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return storageError("load order items", err)
	}
	return nil
}
