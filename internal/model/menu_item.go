package model

import "github.com/shopspring/decimal"

// MenuItem is a purchasable catalog entry. The catalog is shared across all
// authenticated users (no per-user scoping).
type MenuItem struct {
	BaseModel
	Title string          `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Price decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price" validate:"decimal_nonneg"`
}
