package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryPurchase marks expenses auto-generated by restocking: every stock
// increase with a known positive purchase price produces one of these, with
// amount = purchase_price × quantity_added.
const CategoryPurchase = "purchase"

type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category    *string         `gorm:"index"`
	ExpenseDate time.Time       `gorm:"index;autoCreateTime"`
}
