package service

import (
	"errors"
	"fmt"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"
	"go-cafe-pos/internal/ws"
	"go-cafe-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

type CatalogService interface {
	CreateMenuItem(req *MenuItemRequest) (*model.MenuItem, error)
	UpdateMenuItem(id uuid.UUID, req *MenuItemRequest) (*model.MenuItem, error)
	GetAllMenuItems() ([]model.MenuItem, error)
	DeleteMenuItem(id uuid.UUID) (*model.MenuItem, error)
}

type MenuItemRequest struct {
	Title string          `json:"title" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"decimal_nonneg"`
}

type catalogService struct {
	menuRepo repository.MenuItemRepository
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewCatalogService(menuRepo repository.MenuItemRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		menuRepo: menuRepo,
		db:       db,
		wsHub:    hub,
	}
}

func (s *catalogService) CreateMenuItem(req *MenuItemRequest) (*model.MenuItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	item := &model.MenuItem{
		Title: req.Title,
		Price: req.Price,
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventMenuItemCreated, item)
	return item, nil
}

// UpdateMenuItem applies an administrative edit. Price changes do not touch
// past sales: stored totals keep the price resolved when the sale was written.
func (s *catalogService) UpdateMenuItem(id uuid.UUID, req *MenuItemRequest) (*model.MenuItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}

	item.Title = req.Title
	item.Price = req.Price
	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventMenuItemUpdated, item)
	return item, nil
}

func (s *catalogService) GetAllMenuItems() ([]model.MenuItem, error) {
	return s.menuRepo.FindAll()
}

// DeleteMenuItem removes a catalog entry and everything that depends on it:
//  1. collect the sale items referencing it and their owning sales
//  2. delete those sale items
//  3. delete the menu item itself
//  4. delete any touched sale left with zero items; recompute the total of
//     any touched sale that still has items
//
// All four steps run in one transaction, so readers never observe a menu item
// that is gone while its sale items remain, or a sale with zero items.
func (s *catalogService) DeleteMenuItem(id uuid.UUID) (*model.MenuItem, error) {
	var deleted model.MenuItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return ErrMenuItemNotFound
		}

		var refs []model.SaleItem
		if err := tx.Where("menu_item_id = ?", id).Find(&refs).Error; err != nil {
			return err
		}

		touched := make(map[uuid.UUID]bool, len(refs))
		for _, ref := range refs {
			touched[ref.SaleID] = true
		}

		if err := tx.Where("menu_item_id = ?", id).Delete(&model.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&deleted).Error; err != nil {
			return err
		}

		for saleID := range touched {
			var remaining []model.SaleItem
			if err := tx.Preload("MenuItem").Where("sale_id = ?", saleID).Find(&remaining).Error; err != nil {
				return err
			}

			if len(remaining) == 0 {
				// An empty sale is not a valid persisted state
				if err := tx.Delete(&model.Sale{}, "id = ?", saleID).Error; err != nil {
					return err
				}
				continue
			}

			lines := make([]PricedLine, 0, len(remaining))
			for _, item := range remaining {
				lines = append(lines, PricedLine{Quantity: item.Quantity, UnitPrice: item.MenuItem.Price})
			}
			if err := tx.Model(&model.Sale{}).Where("id = ?", saleID).
				Update("total", ComputeTotal(lines)).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventMenuItemDeleted, map[string]interface{}{"id": id})
	return &deleted, nil
}
