package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types accepted on a sale. ChequeDate is required iff the payment
// type is PaymentCheque.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCheque   = "cheque"
)

// Sale owns its items exclusively: items have no lifecycle of their own and
// are replaced wholesale on update. TotalAmount is always the stored result of
// Σ(item.Price × item.Quantity) at the last commit point.
type Sale struct {
	ID          uint            `gorm:"primaryKey"`
	CustomerID  *uint           `gorm:"index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate    time.Time       `gorm:"index;autoCreateTime"`
	PaymentType *string
	ChequeDate  *time.Time `gorm:"type:date;index"`

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem captures the unit price at sale time, deliberately decoupled from
// the product's current price so historical sales keep their original amounts.
type SaleItem struct {
	ID        uint            `gorm:"primaryKey"`
	SaleID    uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
