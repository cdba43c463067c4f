package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// SaleItemRequest is one line item of a sale. Price is the unit price charged
// for this sale, which may differ from the product's current list price.
type SaleItemRequest struct {
	ProductID uint            `json:"productId" validate:"required,min=1"`
	Quantity  int             `json:"quantity"  validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"     validate:"min=0"`
}

type CreateSaleRequest struct {
	CustomerID *uint             `json:"customerId"`
	Items      []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	// TotalAmount is advisory: the stored total is always recomputed as
	// Σ(price × quantity); a mismatching value is logged and discarded.
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	PaymentType string           `json:"paymentType" validate:"omitempty,oneof=cash card transfer cheque"`
	ChequeDate  *string          `json:"chequeDate"  validate:"omitempty,datetime=2006-01-02"`
}

type UpdateSaleRequest struct {
	CustomerID  *uint             `json:"customerId"`
	Items       []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount *decimal.Decimal  `json:"totalAmount"`
	// Empty PaymentType keeps the sale's existing payment fields.
	PaymentType string  `json:"paymentType" validate:"omitempty,oneof=cash card transfer cheque"`
	ChequeDate  *string `json:"chequeDate"  validate:"omitempty,datetime=2006-01-02"`
}

// RestockRequest adjusts a product's stock by a signed delta. Zero is allowed
// and is a no-op that creates no expense.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type CreateSaleResponse struct {
	SaleID  uint `json:"saleId"`
	Success bool `json:"success"`
}

type UpdateSaleResponse struct {
	Success bool `json:"success"`
}

type DeleteSaleResponse struct {
	ID      uint `json:"id"`
	Success bool `json:"success"`
}

type RestockResponse struct {
	Success        bool             `json:"success"`
	ExpenseCreated bool             `json:"expenseCreated"`
	ExpenseAmount  *decimal.Decimal `json:"expenseAmount,omitempty"`
}

// ─── Sale details ────────────────────────────────────────────────────────────

type SaleInfo struct {
	ID          uint            `json:"id"`
	CustomerID  *uint           `json:"customerId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SaleDate    string          `json:"saleDate"`
	PaymentType *string         `json:"paymentType"`
	ChequeDate  *string         `json:"chequeDate"`
}

type CustomerInfo struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type SaleItemDetail struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Barcode     *string         `json:"barcode"`
	VATRate     decimal.Decimal `json:"vatRate"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ItemTotal   decimal.Decimal `json:"itemTotal"`
}

type SaleDetailsResponse struct {
	Sale     SaleInfo         `json:"sale"`
	Customer *CustomerInfo    `json:"customer"`
	Items    []SaleItemDetail `json:"items"`
}

// ─── Listing ─────────────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListItem struct {
	ID           uint            `json:"id"`
	CustomerID   *uint           `json:"customerId"`
	CustomerName *string         `json:"customerName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	SaleDate     string          `json:"saleDate"`
	PaymentType  *string         `json:"paymentType"`
	ChequeDate   *string         `json:"chequeDate"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
