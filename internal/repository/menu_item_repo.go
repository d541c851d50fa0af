package repository

import (
	"go-cafe-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuItemRepository interface {
	Create(item *model.MenuItem) error
	FindAll() ([]model.MenuItem, error)
	FindByID(id uuid.UUID) (*model.MenuItem, error)
	FindByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.MenuItem, error)
	Update(item *model.MenuItem) error
}

type menuItemRepo struct {
	db *gorm.DB
}

func NewMenuItemRepo(db *gorm.DB) MenuItemRepository {
	return &menuItemRepo{db}
}

func (r *menuItemRepo) Create(item *model.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuItemRepo) FindAll() ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *menuItemRepo) FindByID(id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.First(&item, "id = ?", id).Error
	return &item, err
}

// FindByIDs takes *gorm.DB (tx) so price resolution can run inside a transaction
func (r *menuItemRepo) FindByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := tx.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *menuItemRepo) Update(item *model.MenuItem) error {
	return r.db.Save(item).Error
}
