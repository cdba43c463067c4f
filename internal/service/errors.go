package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain errors returned by the service layer. Handlers map these onto HTTP
// status codes; everything else surfaces as a 500.
var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrTemplateNotFound = errors.New("invoice template not found")
)

// InsufficientStockError is returned when a sale (or sale update) asks for
// more units than the product has on hand. Maps to 409 Conflict.
type InsufficientStockError struct {
	ProductID uint
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (id %d): requested %d, available %d",
		e.Product, e.ProductID, e.Requested, e.Available)
}

// InvalidArgumentError covers semantic request problems the validator cannot
// express, such as a cheque payment without a cheque date. Maps to 400.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

func invalidArgf(format string, args ...interface{}) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
