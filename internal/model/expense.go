package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an independent back-office cost entry. Total is always
// quantity x price, recomputed on every write.
type Expense struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Quantity int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price" validate:"decimal_nonneg"`
	Remarks  string          `gorm:"type:text" json:"remarks"`
	Total    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
