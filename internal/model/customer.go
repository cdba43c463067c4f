package model

import "time"

// Customer is a passive CRUD entity. Sales reference it optionally;
// a sale without a customer is a walk-in sale.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index;not null"`
	Phone     *string
	Email     *string
	Address   *string
	CreatedAt time.Time
}
