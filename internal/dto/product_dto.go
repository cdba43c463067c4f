package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name"          validate:"required,min=1,max=200"`
	Description   *string         `json:"description"   validate:"omitempty,max=1000"`
	Price         decimal.Decimal `json:"price"         validate:"min=0"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" validate:"min=0"`
	// StockQuantity > 0 together with a positive PurchasePrice records an
	// automatic purchase expense for the initial stock.
	StockQuantity int              `json:"stockQuantity" validate:"min=0"`
	Barcode       *string          `json:"barcode"       validate:"omitempty,max=64"`
	VATRate       *decimal.Decimal `json:"vatRate"`
}

type UpdateProductRequest struct {
	Name          string           `json:"name"          validate:"required,min=1,max=200"`
	Description   *string          `json:"description"   validate:"omitempty,max=1000"`
	Price         decimal.Decimal  `json:"price"         validate:"min=0"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice" validate:"min=0"`
	StockQuantity int              `json:"stockQuantity" validate:"min=0"`
	Barcode       *string          `json:"barcode"       validate:"omitempty,max=64"`
	VATRate       *decimal.Decimal `json:"vatRate"`
}

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	StockQuantity int             `json:"stockQuantity"`
	Barcode       *string         `json:"barcode"`
	VATRate       decimal.Decimal `json:"vatRate"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// ProductFilter is bound from the query string of GET /v1/products. Search
// matches name or barcode.
type ProductFilter struct {
	Search string `form:"search" validate:"omitempty,max=200"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
