package model

import "time"

// InvoiceTemplate stores a user-defined print layout as a JSON document
// (field keys mapped to millimetre positions on an A4 page, see
// dto.InvoiceTemplateData for the schema).
type InvoiceTemplate struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Data      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// Invoice is a persisted invoice issued for a sale. The number is assigned
// once at save time and never changes, even if the sale is later edited.
type Invoice struct {
	ID            uint    `gorm:"primaryKey"`
	SaleID        uint    `gorm:"index;not null"`
	InvoiceNumber string  `gorm:"uniqueIndex;not null"`
	TemplateType  string  `gorm:"not null;default:'standard'"`
	TemplateData  *string `gorm:"type:text"`
	CreatedAt     time.Time

	Sale *Sale `gorm:"foreignKey:SaleID"`
}
