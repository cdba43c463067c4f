package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries both the current sale price and the purchase price.
// StockQuantity is only ever mutated through the ledger transaction paths
// (sale create/update/delete, restock) and must never go negative.
type Product struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"index;not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	Barcode       *string         `gorm:"index"`
	VATRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
