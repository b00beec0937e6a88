package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ DB *pgxpool.Pool }

func (s *PGStore) All(ctx context.Context) ([]Product, error) {
	rows, err := s.DB.Query(ctx, `SELECT id, name, price, COALESCE(original_price, 0), description, category, image_url, stock
	                              FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Description, &p.Category, &p.ImageURL, &p.Stock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PGStore) Add(ctx context.Context, p Product) (*Product, error) {
	err := s.DB.QueryRow(ctx, `INSERT INTO products (name, price, original_price, description, category, image_url, stock)
	                           VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6, $7)
	                           RETURNING id`,
		p.Name, p.Price, p.OriginalPrice, p.Description, p.Category, p.ImageURL, p.Stock).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

func (s *PGStore) Update(ctx context.Context, id int64, u ProductUpdate) (*Product, error) {
	var p Product
	err := s.DB.QueryRow(ctx, `SELECT id, name, price, COALESCE(original_price, 0), description, category, image_url, stock
	                           FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Description, &p.Category, &p.ImageURL, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	p.apply(u)

	_, err = s.DB.Exec(ctx, `UPDATE products
	                         SET name=$2, price=$3, original_price=NULLIF($4, 0), description=$5, category=$6, image_url=$7, stock=$8
	                         WHERE id=$1`,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Description, p.Category, p.ImageURL, p.Stock)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
