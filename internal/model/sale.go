package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleSpace is the seating location tag of a sale
type SaleSpace string

const (
	SpaceInside     SaleSpace = "inside"
	SpaceOutside    SaleSpace = "outside"
	SpaceGroupStage SaleSpace = "group-stage"
)

// Sale is a single customer transaction composed of line items.
// Total is denormalized: every code path that changes the item set must
// recompute and persist it in the same transaction.
type Sale struct {
	BaseModel
	CustomerName string          `gorm:"type:varchar(255)" json:"customer_name"`
	TableNumber  string          `gorm:"type:varchar(50);not null" json:"table_number" validate:"required"`
	Space        SaleSpace       `gorm:"type:varchar(20);not null" json:"space" validate:"required,oneof=inside outside group-stage"`
	Total        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	IsPaid       bool            `gorm:"default:false" json:"is_paid"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items []SaleItem `json:"items,omitempty"`
}

// SaleItem is one (menu item, quantity) pairing within a Sale. It exists only
// as a child of exactly one Sale and never references a removed MenuItem.
type SaleItem struct {
	BaseModel
	SaleID     uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_item_id" validate:"uuid_required"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}
