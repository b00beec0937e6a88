package catalog

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product prices are integers in the smallest currency unit.
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice,omitempty"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	ImageURL      string `json:"imageUrl"`
	Stock         int    `json:"stock,omitempty"`
}

// ProductUpdate carries the mutable fields of a product; nil means "leave
// as is", matching the partial updates the admin UI sends.
type ProductUpdate struct {
	Name          *string `json:"name"`
	Price         *int64  `json:"price"`
	OriginalPrice *int64  `json:"originalPrice"`
	Description   *string `json:"description"`
	Category      *string `json:"category"`
	ImageURL      *string `json:"imageUrl"`
	Stock         *int    `json:"stock"`
}

func (p *Product) apply(u ProductUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.OriginalPrice != nil {
		p.OriginalPrice = *u.OriginalPrice
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}
