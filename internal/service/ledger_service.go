package service

import (
	"errors"
	"fmt"
	"time"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"
	"go-cafe-pos/internal/ws"
	"go-cafe-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrSaleNotFound    = errors.New("sale not found")
	ErrEmptyItems      = errors.New("a sale needs at least one line item")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrUnknownMenuItem = errors.New("sale references a menu item that does not exist")
)

type LedgerService interface {
	CreateSale(userID uuid.UUID, req *CreateSaleRequest) (*model.Sale, error)
	UpdateSale(saleID uuid.UUID, req *UpdateSaleRequest) (*model.Sale, error)
	SetPaidStatus(saleID uuid.UUID, isPaid bool) (*model.Sale, error)
	DeleteSale(saleID uuid.UUID) error
	GetSales(userID uuid.UUID, from, to *time.Time) ([]model.Sale, error)
	GetSaleItems(from, to *time.Time) ([]model.SaleItem, error)
}

// SaleItemInput is one requested line. The caller sends quantities only;
// prices are always resolved from the catalog server-side.
type SaleItemInput struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"uuid_required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	CustomerName string          `json:"customer_name"`
	TableNumber  string          `json:"table_number" validate:"required"`
	Space        model.SaleSpace `json:"space" validate:"required,oneof=inside outside group-stage"`
	CreatedAt    *time.Time      `json:"created_at"` // optional backdating
	Items        []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateSaleRequest struct {
	CustomerName string          `json:"customer_name"`
	TableNumber  string          `json:"table_number" validate:"required"`
	Space        model.SaleSpace `json:"space" validate:"required,oneof=inside outside group-stage"`
	Items        []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

type ledgerService struct {
	saleRepo repository.SaleRepository
	menuRepo repository.MenuItemRepository
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewLedgerService(saleRepo repository.SaleRepository, menuRepo repository.MenuItemRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		saleRepo: saleRepo,
		menuRepo: menuRepo,
		db:       db,
		wsHub:    hub,
	}
}

// PricedLine pairs a quantity with the unit price resolved for it
type PricedLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeTotal sums quantity x unit price with exact decimal arithmetic.
// Used identically at creation and update.
func ComputeTotal(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// resolveItems turns requested lines into persistable SaleItems plus the
// recomputed total, reading current catalog prices inside tx. Any unknown
// menu item fails the whole batch.
func (s *ledgerService) resolveItems(tx *gorm.DB, inputs []SaleItemInput) ([]model.SaleItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, ErrEmptyItems
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, decimal.Zero, ErrInvalidQuantity
		}
		ids = append(ids, in.MenuItemID)
	}

	menuItems, err := s.menuRepo.FindByIDs(tx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	priceByID := make(map[uuid.UUID]decimal.Decimal, len(menuItems))
	for _, mi := range menuItems {
		priceByID[mi.ID] = mi.Price
	}

	items := make([]model.SaleItem, 0, len(inputs))
	lines := make([]PricedLine, 0, len(inputs))
	for _, in := range inputs {
		price, ok := priceByID[in.MenuItemID]
		if !ok {
			return nil, decimal.Zero, ErrUnknownMenuItem
		}
		items = append(items, model.SaleItem{
			MenuItemID: in.MenuItemID,
			Quantity:   in.Quantity,
		})
		lines = append(lines, PricedLine{Quantity: in.Quantity, UnitPrice: price})
	}

	return items, ComputeTotal(lines), nil
}

func (s *ledgerService) CreateSale(userID uuid.UUID, req *CreateSaleRequest) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	var saleID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, total, err := s.resolveItems(tx, req.Items)
		if err != nil {
			return err
		}

		sale := model.Sale{
			CustomerName: req.CustomerName,
			TableNumber:  req.TableNumber,
			Space:        req.Space,
			Total:        total,
			IsPaid:       false,
			UserID:       userID,
			Items:        items,
		}
		if req.CreatedAt != nil {
			sale.CreatedAt = *req.CreatedAt
		}

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.saleRepo.FindByID(saleID)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventSaleRecorded, created)
	return created, nil
}

func (s *ledgerService) UpdateSale(saleID uuid.UUID, req *UpdateSaleRequest) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&sale, "id = ?", saleID).Error; err != nil {
			return ErrSaleNotFound
		}

		items, total, err := s.resolveItems(tx, req.Items)
		if err != nil {
			return err
		}

		// Replace the full line-item set and the denormalized total as one
		// atomic unit; the sale never commits with a stale total.
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&model.SaleItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return tx.Model(&sale).Updates(map[string]interface{}{
			"customer_name": req.CustomerName,
			"table_number":  req.TableNumber,
			"space":         req.Space,
			"total":         total,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.saleRepo.FindByID(saleID)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventSaleUpdated, updated)
	return updated, nil
}

// SetPaidStatus toggles the flag only; no total recomputation. Idempotent.
func (s *ledgerService) SetPaidStatus(saleID uuid.UUID, isPaid bool) (*model.Sale, error) {
	rows, err := s.saleRepo.SetPaidStatus(saleID, isPaid)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSaleNotFound
	}
	return s.saleRepo.FindByID(saleID)
}

func (s *ledgerService) DeleteSale(saleID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			return ErrSaleNotFound
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&model.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
	if err != nil {
		return err
	}

	s.wsHub.Publish(ws.EventSaleDeleted, map[string]interface{}{"id": saleID})
	return nil
}

func (s *ledgerService) GetSales(userID uuid.UUID, from, to *time.Time) ([]model.Sale, error) {
	return s.saleRepo.FindByUser(userID, from, to)
}

func (s *ledgerService) GetSaleItems(from, to *time.Time) ([]model.SaleItem, error) {
	return s.saleRepo.FindItems(from, to)
}
